package library

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/cnf/structhash"

	"bitbucket.org/jayflux/mypodcasts_library/models"
)

const manifestName = ".library-manifest.json"

// manifestEntry records what we last synced for one GUID. The manifest is
// advisory bookkeeping: materialization stays existence-gated on the files
// themselves, but with the manifest GUID-level dedup no longer depends on
// the derived filename alone.
type manifestEntry struct {
	BaseName  string `json:"baseName"`
	Digest    string `json:"digest"`
	FirstSeen string `json:"firstSeen"`
}

type manifest struct {
	entries map[string]manifestEntry
	dirty   bool
}

// loadManifest reads the podcast manifest, starting fresh when it is
// missing or corrupt.
func loadManifest(podcastDir string) *manifest {
	m := &manifest{entries: make(map[string]manifestEntry)}
	data, err := os.ReadFile(filepath.Join(podcastDir, manifestName))
	if err != nil {
		return m
	}
	if err := json.Unmarshal(data, &m.entries); err != nil {
		log.Printf("library: corrupt manifest in %s, rebuilding: %v", podcastDir, err)
		m.entries = make(map[string]manifestEntry)
	}
	return m
}

func (m *manifest) record(ep *models.Episode) {
	digest, err := structhash.Hash(ep, 1)
	if err != nil {
		log.Printf("library: hashing episode %s: %v", ep.GUID, err)
		return
	}

	prev, seen := m.entries[ep.GUID]
	if seen && prev.Digest == digest {
		return
	}
	if seen {
		// Sidecars are write-once, so an upstream edit is observable here
		// but never reflected on disk without manual deletion.
		log.Printf("library: episode %s changed upstream since first sync", ep.GUID)
	}

	firstSeen := prev.FirstSeen
	if firstSeen == "" {
		firstSeen = time.Now().Format(time.RFC3339)
	}
	m.entries[ep.GUID] = manifestEntry{
		BaseName:  episodeBaseName(ep),
		Digest:    digest,
		FirstSeen: firstSeen,
	}
	m.dirty = true
}

func (m *manifest) save(podcastDir string) error {
	if !m.dirty {
		return nil
	}
	data, err := json.MarshalIndent(m.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(podcastDir, manifestName), append(data, '\n'), 0644)
}
