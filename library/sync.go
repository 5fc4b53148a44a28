// Package library materializes parsed feeds as a TV-show-shaped directory
// tree the external media scanner can index. The tree is the only persisted
// state: every artifact is written once, existence-checked, and never
// overwritten, which is what makes a sync cycle safely re-runnable.
package library

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"bitbucket.org/jayflux/mypodcasts_library/config"
	"bitbucket.org/jayflux/mypodcasts_library/feed"
	"bitbucket.org/jayflux/mypodcasts_library/models"
)

const seasonDirName = "Season 1"

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Synchronize runs one full refresh cycle over every enabled feed source.
// Sources fail independently, a broken feed only costs its own episodes.
func Synchronize(cfg *config.Config) {
	log.Println("library: starting synchronization cycle")
	for _, src := range cfg.Podcasts {
		if !src.Enabled {
			continue
		}
		syncPodcast(cfg, src)
	}
	if cfg.Library.AutoCleanup {
		if err := CleanupOldEpisodes(cfg.Library.Path, cfg.Library.DaysToKeepEpisodes); err != nil {
			log.Printf("library: retention cleanup: %v", err)
		}
	}
	log.Println("library: synchronization cycle finished")
}

func syncPodcast(cfg *config.Config, src config.PodcastSource) {
	parsed := feed.Parse(src.URL)
	if parsed == nil {
		log.Printf("library: skipping %s, feed did not parse", src.URL)
		return
	}

	name := src.Name
	if name == "" {
		name = parsed.Title
	}
	dirName := SanitizeFileName(name)
	if dirName == "" {
		log.Printf("library: skipping %s, no usable podcast name", src.URL)
		return
	}

	podcastDir := filepath.Join(cfg.Library.Path, dirName)
	if err := os.MkdirAll(podcastDir, 0755); err != nil {
		log.Printf("library: creating %s: %v", podcastDir, err)
		return
	}

	if cfg.Library.DownloadThumbnails && parsed.ImageURL != "" {
		folderJPG := filepath.Join(podcastDir, "folder.jpg")
		if shouldWrite(folderJPG) {
			if err := downloadFile(parsed.ImageURL, folderJPG); err != nil {
				log.Printf("library: downloading artwork for %s: %v", dirName, err)
			}
		}
	}

	showNFO := filepath.Join(podcastDir, "tvshow.nfo")
	if shouldWrite(showNFO) {
		if err := writeShowNFO(showNFO, parsed); err != nil {
			log.Printf("library: writing %s: %v", showNFO, err)
		}
	}

	seasonDir := filepath.Join(podcastDir, seasonDirName)
	if err := os.MkdirAll(seasonDir, 0755); err != nil {
		log.Printf("library: creating %s: %v", seasonDir, err)
		return
	}
	// The streaming token embeds this path, so it has to be absolute.
	absSeasonDir, err := filepath.Abs(seasonDir)
	if err != nil {
		absSeasonDir = seasonDir
	}

	man := loadManifest(podcastDir)
	episodes := selectEpisodes(parsed.Episodes, cfg.Library.MaxEpisodes)
	for i, ep := range episodes {
		// The counter advances even when an episode fails, a failure must
		// not shift the numbers of episodes behind it.
		number := i + 1
		if err := materializeEpisode(cfg, ep, absSeasonDir, number); err != nil {
			log.Printf("library: episode %q of %s: %v", ep.Title, dirName, err)
			continue
		}
		man.record(ep)
	}
	if err := man.save(podcastDir); err != nil {
		log.Printf("library: writing manifest for %s: %v", dirName, err)
	}

	log.Printf("library: %s synchronized, %d episodes", dirName, len(episodes))
}

// selectEpisodes orders newest-first and applies the per-podcast limit.
// Episodes without a date sort as oldest.
func selectEpisodes(eps []*models.Episode, max int) []*models.Episode {
	sorted := make([]*models.Episode, len(eps))
	copy(sorted, eps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})
	if max > 0 && len(sorted) > max {
		sorted = sorted[:max]
	}
	return sorted
}

// episodeBaseName derives the shared stem of an episode's artifact files.
// This doubles as the only cross-cycle identity for episodes whose feed
// carries no GUID.
func episodeBaseName(ep *models.Episode) string {
	date := "unknown"
	if ep.HasPublishDate() {
		date = ep.PublishedAt.Format("2006-01-02")
	}
	return date + " - " + SanitizeFileName(ep.Title)
}

func materializeEpisode(cfg *config.Config, ep *models.Episode, seasonDir string, number int) error {
	base := filepath.Join(seasonDir, episodeBaseName(ep))

	strmPath := base + ".strm"
	if shouldWrite(strmPath) {
		if err := os.WriteFile(strmPath, []byte(strmContent(ep, cfg, seasonDir)), 0644); err != nil {
			return err
		}
	}

	if needsAudioURL(ep, cfg) {
		audioPath := base + ".audiourl"
		if shouldWrite(audioPath) {
			if err := os.WriteFile(audioPath, []byte(ep.MediaURL), 0644); err != nil {
				return err
			}
		}
	}

	nfoPath := base + ".nfo"
	if shouldWrite(nfoPath) {
		if err := writeEpisodeNFO(nfoPath, ep, number); err != nil {
			return err
		}
	}

	if cfg.Library.DownloadThumbnails && ep.ImageURL != "" {
		thumbPath := base + "-thumb.jpg"
		if shouldWrite(thumbPath) {
			if err := downloadFile(ep.ImageURL, thumbPath); err != nil {
				log.Printf("library: downloading thumbnail for %q: %v", ep.Title, err)
			}
		}
	}

	return nil
}

// shouldWrite is the write-once gate: artifacts are only ever created, a
// present file is never touched again.
func shouldWrite(path string) bool {
	_, err := os.Stat(path)
	return errors.Is(err, fs.ErrNotExist)
}

func downloadFile(url, path string) error {
	resp, err := httpClient.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.New("unexpected status " + resp.Status)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, resp.Body)
	return err
}
