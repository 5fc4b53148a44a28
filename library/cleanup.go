package library

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Podcast-level metadata survives both cleanup operations.
var protectedFiles = map[string]bool{
	"tvshow.nfo": true,
	"folder.jpg": true,
}

// CleanupOldEpisodes removes episode file sets whose pointer file has aged
// past the retention window. Age is the file's timestamp, not the episode's
// publish date - artifacts are write-once, so modification time is creation
// time.
func CleanupOldEpisodes(root string, daysToKeep int) error {
	cutoff := time.Now().AddDate(0, 0, -daysToKeep)

	podcasts, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, p := range podcasts {
		if !p.IsDir() {
			continue
		}
		podcastDir := filepath.Join(root, p.Name())
		seasons, err := os.ReadDir(podcastDir)
		if err != nil {
			log.Printf("library: reading %s: %v", podcastDir, err)
			continue
		}
		for _, s := range seasons {
			if !s.IsDir() {
				continue
			}
			cleanSeasonDir(filepath.Join(podcastDir, s.Name()), cutoff)
		}
	}
	return nil
}

func cleanSeasonDir(dir string, cutoff time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("library: reading %s: %v", dir, err)
		return
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".strm") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		base := strings.TrimSuffix(e.Name(), ".strm")
		log.Printf("library: expiring %s", filepath.Join(dir, base))
		for _, name := range []string{base + ".strm", base + ".nfo", base + ".audiourl", base + "-thumb.jpg"} {
			if err := os.Remove(filepath.Join(dir, name)); err != nil && !os.IsNotExist(err) {
				log.Printf("library: removing %s: %v", name, err)
			}
		}
	}

	// An emptied season folder would confuse the scanner, drop it.
	if remaining, err := os.ReadDir(dir); err == nil && len(remaining) == 0 {
		if err := os.Remove(dir); err != nil {
			log.Printf("library: removing %s: %v", dir, err)
		}
	}
}

// CleanupEpisodeFiles is the bulk maintenance operation: it deletes every
// file in every season directory except the protected podcast metadata, and
// reports how many files went.
func CleanupEpisodeFiles(root string) (int, error) {
	deleted := 0

	podcasts, err := os.ReadDir(root)
	if err != nil {
		return 0, err
	}
	for _, p := range podcasts {
		if !p.IsDir() {
			continue
		}
		podcastDir := filepath.Join(root, p.Name())
		seasons, err := os.ReadDir(podcastDir)
		if err != nil {
			log.Printf("library: reading %s: %v", podcastDir, err)
			continue
		}
		for _, s := range seasons {
			if !s.IsDir() {
				continue
			}
			seasonDir := filepath.Join(podcastDir, s.Name())
			files, err := os.ReadDir(seasonDir)
			if err != nil {
				log.Printf("library: reading %s: %v", seasonDir, err)
				continue
			}
			for _, f := range files {
				if f.IsDir() || protectedFiles[f.Name()] {
					continue
				}
				if err := os.Remove(filepath.Join(seasonDir, f.Name())); err != nil {
					log.Printf("library: removing %s: %v", f.Name(), err)
					continue
				}
				deleted++
			}
		}
	}
	return deleted, nil
}
