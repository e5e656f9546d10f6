package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/repository"
	"taskboard/internal/repository/memory"
	"taskboard/internal/storage"
)

type fakeObjectStore struct {
	putBucket string
	putKey    string
	putBody   []byte
	putErr    error

	listPrefix string
	listOut    []storage.ObjectInfo
}

func (f *fakeObjectStore) PutObject(_ context.Context, bucket, key string, body []byte) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	f.putBucket, f.putKey, f.putBody = bucket, key, body
	return "s3://" + bucket + "/" + key, nil
}

func (f *fakeObjectStore) ListObjects(_ context.Context, _, prefix string) ([]storage.ObjectInfo, error) {
	f.listPrefix = prefix
	return f.listOut, nil
}

func TestSnapshotUploadsAllThreeKeys(t *testing.T) {
	kv := memory.NewKV()
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, repository.KeyUsers, []byte(`[{"name":"A","email":"a@x.com","password":"pw"}]`)))
	require.NoError(t, kv.Put(ctx, repository.KeyTasks, []byte(`[]`)))
	require.NoError(t, kv.Put(ctx, repository.KeyCurrentUser, []byte(`{"name":"A","email":"a@x.com"}`)))

	objects := &fakeObjectStore{}
	svc := NewBackupService(kv, objects, "bucket", "taskboard-backups").(*backupService)
	svc.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }

	location, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/taskboard-backups/taskboard-20260829T120000Z.json", location)

	var snap struct {
		TakenAt     time.Time       `json:"takenAt"`
		Users       json.RawMessage `json:"users"`
		Tasks       json.RawMessage `json:"tasks"`
		CurrentUser json.RawMessage `json:"currentUser"`
	}
	require.NoError(t, json.Unmarshal(objects.putBody, &snap))
	assert.JSONEq(t, `[{"name":"A","email":"a@x.com","password":"pw"}]`, string(snap.Users))
	assert.JSONEq(t, `[]`, string(snap.Tasks))
	assert.JSONEq(t, `{"name":"A","email":"a@x.com"}`, string(snap.CurrentUser))
}

func TestSnapshotSkipsAbsentKeys(t *testing.T) {
	objects := &fakeObjectStore{}
	svc := NewBackupService(memory.NewKV(), objects, "bucket", "")

	_, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	var snap map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(objects.putBody, &snap))
	assert.NotContains(t, snap, "users")
	assert.NotContains(t, snap, "tasks")
	assert.NotContains(t, snap, "currentUser")
}

func TestListBackupsUsesConfiguredPrefix(t *testing.T) {
	objects := &fakeObjectStore{listOut: []storage.ObjectInfo{{Key: "taskboard-backups/x.json", Size: 2}}}
	svc := NewBackupService(memory.NewKV(), objects, "bucket", "taskboard-backups/")

	out, err := svc.ListBackups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "taskboard-backups", objects.listPrefix)
	assert.Len(t, out, 1)
}
