package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/repository"
	"taskboard/internal/storage"
)

// BackupService snapshots the persisted state (all three keys) into object
// storage. Single attempt per call; failures surface to the caller.
type BackupService interface {
	Snapshot(ctx context.Context) (location string, err error)
	ListBackups(ctx context.Context) ([]storage.ObjectInfo, error)
}

type snapshot struct {
	TakenAt     time.Time       `json:"takenAt"`
	Users       json.RawMessage `json:"users,omitempty"`
	Tasks       json.RawMessage `json:"tasks,omitempty"`
	CurrentUser json.RawMessage `json:"currentUser,omitempty"`
}

type backupService struct {
	store     repository.KV
	objects   storage.Service
	bucket    string
	keyPrefix string
	now       func() time.Time
}

func NewBackupService(store repository.KV, objects storage.Service, bucket, keyPrefix string) BackupService {
	return &backupService{
		store:     store,
		objects:   objects,
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		now:       time.Now,
	}
}

func (s *backupService) Snapshot(ctx context.Context) (string, error) {
	snap := snapshot{TakenAt: s.now().UTC()}

	for _, part := range []struct {
		key  string
		dest *json.RawMessage
	}{
		{repository.KeyUsers, &snap.Users},
		{repository.KeyTasks, &snap.Tasks},
		{repository.KeyCurrentUser, &snap.CurrentUser},
	} {
		raw, ok, err := s.store.Get(ctx, part.key)
		if err != nil {
			return "", fmt.Errorf("read key %q for snapshot: %w", part.key, err)
		}
		if ok {
			*part.dest = json.RawMessage(raw)
		}
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := fmt.Sprintf("taskboard-%s.json", snap.TakenAt.Format("20060102T150405Z"))
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + key
	}

	location, err := s.objects.PutObject(ctx, s.bucket, key, body)
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}
	return location, nil
}

func (s *backupService) ListBackups(ctx context.Context) ([]storage.ObjectInfo, error) {
	return s.objects.ListObjects(ctx, s.bucket, s.keyPrefix)
}
