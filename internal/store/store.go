// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

// Package store persists namespace-scoped document collections on disk and
// answers similarity searches over them. Each namespace is a directory
// holding two pretty-printed JSON files: config.json (the namespace config)
// and vectors.json (the full document collection). Writes always rewrite
// the whole file through a temp-file rename, so a crash leaves either the
// old or the new content, never a torn file.
package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

const (
	configFile  = "config.json"
	vectorsFile = "vectors.json"
)

// Store is the only component that touches disk. Write operations on a
// namespace are serialized through a per-namespace mutex so concurrent
// upserts no longer race on the read-modify-write of vectors.json; reads
// take no lock and may observe either side of an in-flight rewrite.
type Store struct {
	base string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Store rooted at base. The directory is created lazily on
// first write.
func New(base string) *Store {
	return &Store{
		base:  base,
		locks: make(map[string]*sync.Mutex),
	}
}

// Base returns the root directory of the store.
func (s *Store) Base() string { return s.base }

// SanitizeNamespace maps a namespace name onto the characters allowed in
// the on-disk layout: [A-Za-z0-9.-], everything else replaced by '_'.
func SanitizeNamespace(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// Load returns the document collection for a namespace in insertion order.
// A namespace with no vectors file yields an empty slice, not an error.
func (s *Store) Load(ctx context.Context, namespace string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(namespace, vectorsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return []Document{}, nil
		}
		return nil, ragerr.Wrapf(err, ragerr.CodeStoreReadFailure, "reading vectors for namespace %q", namespace)
	}

	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, ragerr.Wrap(err, ragerr.CodeStoreDecodeFailure, "decoding vectors file", ragerr.FieldNamespace(namespace))
	}
	return docs, nil
}

// Save overwrites the entire document collection for a namespace.
func (s *Store) Save(ctx context.Context, namespace string, docs []Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.writeJSON(namespace, vectorsFile, docs)
}

// Upsert replaces the document with a matching id in place, preserving
// collection order, or appends it when the id is new.
func (s *Store) Upsert(ctx context.Context, namespace string, doc Document) error {
	if doc.ID == "" {
		return ragerr.New(ragerr.CodeStoreInvalidInput, "document id must not be empty", ragerr.FieldNamespace(namespace))
	}

	lock := s.namespaceLock(namespace)
	lock.Lock()
	defer lock.Unlock()

	docs, err := s.Load(ctx, namespace)
	if err != nil {
		return err
	}

	replaced := false
	for i := range docs {
		if docs[i].ID == doc.ID {
			docs[i] = doc
			replaced = true
			break
		}
	}
	if !replaced {
		docs = append(docs, doc)
	}

	return s.Save(ctx, namespace, docs)
}

// SaveConfig overwrites the namespace config as a whole object.
func (s *Store) SaveConfig(ctx context.Context, cfg NamespaceConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cfg.Namespace == "" {
		return ragerr.New(ragerr.CodeStoreInvalidInput, "namespace must not be empty")
	}
	return s.writeJSON(cfg.Namespace, configFile, cfg)
}

// LoadConfig reads the namespace config. An absent config is reported as
// (nil, nil), not as an error; callers decide whether that is a problem.
// Unknown fields in the file are ignored.
func (s *Store) LoadConfig(ctx context.Context, namespace string) (*NamespaceConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(namespace, configFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ragerr.Wrapf(err, ragerr.CodeStoreReadFailure, "reading config for namespace %q", namespace)
	}

	var cfg NamespaceConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, ragerr.Wrap(err, ragerr.CodeStoreDecodeFailure, "decoding config file", ragerr.FieldNamespace(namespace))
	}
	return &cfg, nil
}

// List enumerates all namespace directories, sorted by name. A directory
// with documents but no config still appears, named after the directory,
// with a zero CreatedAt.
func (s *Store) List(ctx context.Context) ([]NamespaceInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.base)
	if err != nil {
		if os.IsNotExist(err) {
			return []NamespaceInfo{}, nil
		}
		return nil, ragerr.Wrapf(err, ragerr.CodeStoreReadFailure, "listing store directory %s", s.base)
	}

	infos := make([]NamespaceInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		info := NamespaceInfo{Namespace: entry.Name()}
		if cfg, err := s.LoadConfig(ctx, entry.Name()); err == nil && cfg != nil {
			info.Namespace = cfg.Namespace
			info.CreatedAt = cfg.CreatedAt
		}
		if docs, err := s.Load(ctx, entry.Name()); err == nil {
			info.DocumentCount = len(docs)
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Namespace < infos[j].Namespace })
	return infos, nil
}

// Delete removes all persisted state for a namespace, config and documents
// together. Deleting an absent namespace is a no-op.
func (s *Store) Delete(ctx context.Context, namespace string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lock := s.namespaceLock(namespace)
	lock.Lock()
	defer lock.Unlock()

	dir := filepath.Join(s.base, SanitizeNamespace(namespace))
	if err := os.RemoveAll(dir); err != nil {
		return ragerr.Wrapf(err, ragerr.CodeStoreWriteFailure, "deleting namespace %q", namespace)
	}
	return nil
}

func (s *Store) namespaceLock(namespace string) *sync.Mutex {
	key := SanitizeNamespace(namespace)

	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

func (s *Store) path(namespace, file string) string {
	return filepath.Join(s.base, SanitizeNamespace(namespace), file)
}

// writeJSON rewrites a namespace file in one shot: marshal, write to a
// temp file in the same directory, rename over the target.
func (s *Store) writeJSON(namespace, file string, v any) error {
	dir := filepath.Join(s.base, SanitizeNamespace(namespace))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ragerr.Wrapf(err, ragerr.CodeStoreWriteFailure, "creating namespace directory %s", dir)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ragerr.Wrap(err, ragerr.CodeStoreWriteFailure, "encoding "+file, ragerr.FieldNamespace(namespace))
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, file+".tmp-*")
	if err != nil {
		return ragerr.Wrapf(err, ragerr.CodeStoreWriteFailure, "creating temp file in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return ragerr.Wrap(err, ragerr.CodeStoreWriteFailure, "writing "+file, ragerr.FieldNamespace(namespace))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return ragerr.Wrap(err, ragerr.CodeStoreWriteFailure, "closing "+file, ragerr.FieldNamespace(namespace))
	}

	if err := os.Rename(tmpName, filepath.Join(dir, file)); err != nil {
		_ = os.Remove(tmpName)
		return ragerr.Wrap(err, ragerr.CodeStoreWriteFailure, "replacing "+file, ragerr.FieldNamespace(namespace))
	}
	return nil
}
