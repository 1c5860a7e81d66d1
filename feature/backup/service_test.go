package backup

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"grail-monitor/core/storage/mocks"
	"grail-monitor/feature/monitor"
)

func newTestService(client *mocks.Client, cfg Config) *Service {
	svc := NewService(client, "grail-saves", cfg, zap.NewNop())
	svc.readFile = func(string) ([]byte, error) { return []byte("save bytes"), nil }
	svc.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func objectChannel(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		ch <- minio.ObjectInfo{Key: key}
	}
	close(ch)
	return ch
}

func TestBackupFileUploadsUnderSaveName(t *testing.T) {
	client := new(mocks.Client)
	svc := newTestService(client, Config{Enabled: true, KeepCopies: 10})

	client.On("PutObject", mock.Anything, "grail-saves", "saves/Sorc/20250601T120000.d2s",
		mock.Anything, int64(10), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "grail-saves", mock.Anything).
		Return(objectChannel("saves/Sorc/20250601T120000.d2s"))

	err := svc.BackupFile(context.Background(), "/saves/Sorc.d2s")
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestBackupFilePrunesOldestCopies(t *testing.T) {
	client := new(mocks.Client)
	svc := newTestService(client, Config{Enabled: true, KeepCopies: 2})

	client.On("PutObject", mock.Anything, "grail-saves", mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "grail-saves", mock.Anything).
		Return(objectChannel(
			"saves/Sorc/20250530T090000.d2s",
			"saves/Sorc/20250531T090000.d2s",
			"saves/Sorc/20250601T120000.d2s",
		))
	var removed []string
	client.On("RemoveObjects", mock.Anything, "grail-saves", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			for info := range args.Get(2).(<-chan minio.ObjectInfo) {
				removed = append(removed, info.Key)
			}
		}).
		Return(nil)

	err := svc.BackupFile(context.Background(), "/saves/Sorc.d2s")
	require.NoError(t, err)
	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "RemoveObjects", 1)
	assert.Equal(t, []string{"saves/Sorc/20250530T090000.d2s"}, removed)
}

func TestBackupFileReadFailure(t *testing.T) {
	client := new(mocks.Client)
	svc := newTestService(client, Config{Enabled: true, KeepCopies: 10})
	svc.readFile = func(string) ([]byte, error) { return nil, errors.New("gone") }

	err := svc.BackupFile(context.Background(), "/saves/Sorc.d2s")
	assert.Error(t, err)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleSaveFileEventFilters(t *testing.T) {
	client := new(mocks.Client)

	event := monitor.SaveFileEventPayload{
		Type: monitor.SaveFileEventParsed,
		File: monitor.SaveSource{Path: "/saves/Sorc.d2s"},
	}

	// Disabled feature uploads nothing.
	svc := newTestService(client, Config{Enabled: false, KeepCopies: 10})
	require.NoError(t, svc.HandleSaveFileEvent(context.Background(), event))

	// Silent initial passes upload nothing.
	svc = newTestService(client, Config{Enabled: true, KeepCopies: 10})
	silent := event
	silent.Silent = true
	require.NoError(t, svc.HandleSaveFileEvent(context.Background(), silent))

	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything)
}

func TestEnsureBucketCreatesWhenMissing(t *testing.T) {
	client := new(mocks.Client)
	svc := newTestService(client, Config{Enabled: true})

	client.On("BucketExists", mock.Anything, "grail-saves").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "grail-saves", mock.Anything).Return(nil)

	require.NoError(t, svc.EnsureBucket(context.Background()))
	client.AssertExpectations(t)
}

func TestEnsureBucketSkipsExisting(t *testing.T) {
	client := new(mocks.Client)
	svc := newTestService(client, Config{Enabled: true})

	client.On("BucketExists", mock.Anything, "grail-saves").Return(true, nil)

	require.NoError(t, svc.EnsureBucket(context.Background()))
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestFetchReadsObject(t *testing.T) {
	client := new(mocks.Client)
	svc := newTestService(client, Config{Enabled: true})

	body := io.NopCloser(bytes.NewReader([]byte("save bytes")))
	client.On("GetObject", mock.Anything, "grail-saves", "saves/Sorc/20250601T120000.d2s", mock.Anything).
		Return(body, nil)

	data, err := svc.Fetch(context.Background(), "saves/Sorc/20250601T120000.d2s")
	require.NoError(t, err)
	assert.Equal(t, []byte("save bytes"), data)
}

func TestListFiltersByName(t *testing.T) {
	client := new(mocks.Client)
	svc := newTestService(client, Config{Enabled: true})

	client.On("ListObjects", mock.Anything, "grail-saves",
		mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == "saves/Sorc/"
		})).
		Return(objectChannel(
			"saves/Sorc/20250531T090000.d2s",
			"saves/Sorc/20250530T090000.d2s",
		))

	keys, err := svc.List(context.Background(), "Sorc")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"saves/Sorc/20250530T090000.d2s",
		"saves/Sorc/20250531T090000.d2s",
	}, keys)
}
