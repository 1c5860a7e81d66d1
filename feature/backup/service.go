package backup

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"grail-monitor/core/eventbus"
	"grail-monitor/core/storage"
	"grail-monitor/feature/monitor"
)

// Config controls save-file backups.
type Config struct {
	// Enabled turns backups on. Without it the feature stays inert.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// KeepCopies is how many backups to retain per save file.
	KeepCopies int `mapstructure:"keep_copies" default:"10"`
}

// objectTimeFormat names backup objects sortably, newest last.
const objectTimeFormat = "20060102T150405"

// Service uploads a copy of every parsed save file to object storage and
// prunes old copies past the retention count. It reacts to save-file events
// rather than hooking the parse path, so a storage outage never slows a
// parse pass down.
type Service struct {
	client storage.Client
	bucket string
	cfg    Config
	logger *zap.Logger

	readFile func(string) ([]byte, error)
	now      func() time.Time
}

// NewService creates the backup service.
func NewService(client storage.Client, bucket string, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		client:   client,
		bucket:   bucket,
		cfg:      cfg,
		logger:   logger,
		readFile: os.ReadFile,
		now:      time.Now,
	}
}

// EnsureBucket creates the backup bucket when it does not exist yet.
func (s *Service) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check backup bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create backup bucket: %w", err)
	}
	s.logger.Info("backup bucket created", zap.String("bucket", s.bucket))
	return nil
}

// Subscribe attaches the service to the save-file event stream.
func (s *Service) Subscribe(bus *eventbus.Bus) {
	bus.On(eventbus.TopicSaveFileEvent, func(payload any) error {
		event, ok := payload.(monitor.SaveFileEventPayload)
		if !ok {
			return nil
		}
		return s.HandleSaveFileEvent(context.Background(), event)
	})
}

// HandleSaveFileEvent backs up the file behind one parsed save-file event.
// Initial silent passes are skipped: they back up nothing new, and a fresh
// start would otherwise upload every save at once.
func (s *Service) HandleSaveFileEvent(ctx context.Context, event monitor.SaveFileEventPayload) error {
	if !s.cfg.Enabled || event.Silent || event.Type != monitor.SaveFileEventParsed {
		return nil
	}
	return s.BackupFile(ctx, event.File.Path)
}

// BackupFile uploads one save file under saves/<base>/<timestamp><ext> and
// prunes copies past the retention count.
func (s *Service) BackupFile(ctx context.Context, path string) error {
	data, err := s.readFile(path)
	if err != nil {
		return fmt.Errorf("failed to read save file for backup: %w", err)
	}

	key := s.objectKey(path)
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("failed to upload backup: %w", err)
	}

	s.logger.Debug("save file backed up",
		zap.String("path", path),
		zap.String("object", key),
	)

	s.prune(ctx, prefixFor(path))
	return nil
}

func (s *Service) objectKey(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stamp := s.now().UTC().Format(objectTimeFormat)
	return fmt.Sprintf("%s%s%s", prefixFor(path), stamp, ext)
}

func prefixFor(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("saves/%s/", name)
}

// prune removes the oldest copies beyond the retention count. The sortable
// timestamp in the object name makes lexical order chronological.
func (s *Service) prune(ctx context.Context, prefix string) {
	if s.cfg.KeepCopies <= 0 {
		return
	}

	var keys []string
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if info.Err != nil {
			s.logger.Warn("failed to list backups", zap.String("prefix", prefix), zap.Error(info.Err))
			return
		}
		keys = append(keys, info.Key)
	}
	if len(keys) <= s.cfg.KeepCopies {
		return
	}

	sort.Strings(keys)
	stale := keys[:len(keys)-s.cfg.KeepCopies]
	objectsCh := make(chan minio.ObjectInfo, len(stale))
	for _, key := range stale {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)
	for removeErr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		s.logger.Warn("failed to prune backup",
			zap.String("object", removeErr.ObjectName),
			zap.Error(removeErr.Err),
		)
	}
}

// List returns the backup object keys under one save file's prefix, or all
// backups when name is empty.
func (s *Service) List(ctx context.Context, name string) ([]string, error) {
	prefix := "saves/"
	if name != "" {
		prefix = fmt.Sprintf("saves/%s/", name)
	}

	var keys []string
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list backups: %w", info.Err)
		}
		keys = append(keys, info.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Fetch streams one backup object.
func (s *Service) Fetch(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch backup: %w", err)
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	return buf.Bytes(), nil
}
