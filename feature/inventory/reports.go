package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// ReportInfo describes an archived sync report.
type ReportInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// ReportArchive stores sync summaries.
type ReportArchive interface {
	Save(ctx context.Context, summary Summary) (string, error)
	List(ctx context.Context, limit int) ([]ReportInfo, error)
	Load(ctx context.Context, key string) (Summary, error)
}

// ErrReportNotFound is returned when a report key does not exist in the archive.
var ErrReportNotFound = errors.New("report not found")

// BucketArchive writes summaries as JSON objects to a storage bucket.
type BucketArchive struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucketArchive creates an archive under prefix in bucket.
func NewBucketArchive(client storage.Client, bucket, prefix string) *BucketArchive {
	return &BucketArchive{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// ReportKey returns {prefix}/YYYY/MM/DD/HHMMSS.json for the run start time.
func ReportKey(prefix string, startedAt time.Time) string {
	t := startedAt.UTC()
	name := fmt.Sprintf("%04d/%02d/%02d/%02d%02d%02d.json", t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// Save uploads summary and returns its object key.
func (a *BucketArchive) Save(ctx context.Context, summary Summary) (string, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	key := ReportKey(a.prefix, summary.StartedAt)
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report %s: %w", key, err)
	}
	return key, nil
}

// List returns the newest archived reports first.
func (a *BucketArchive) List(ctx context.Context, limit int) ([]ReportInfo, error) {
	prefix := a.prefix
	if prefix != "" {
		prefix += "/"
	}

	var reports []ReportInfo
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		reports = append(reports, ReportInfo{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}

	// Keys embed the start time, so lexical order is chronological
	sort.Slice(reports, func(i, j int) bool { return reports[i].Key > reports[j].Key })
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

// Load reads one archived summary back. Keys outside the archive prefix are
// reported as not found.
func (a *BucketArchive) Load(ctx context.Context, key string) (Summary, error) {
	key = strings.TrimPrefix(key, "/")
	if !strings.HasSuffix(key, ".json") || strings.Contains(key, "..") ||
		(a.prefix != "" && !strings.HasPrefix(key, a.prefix+"/")) {
		return Summary{}, ErrReportNotFound
	}

	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return Summary{}, notFoundOr(key, err)
	}
	defer obj.Close()

	var summary Summary
	if err := json.NewDecoder(obj).Decode(&summary); err != nil {
		return Summary{}, notFoundOr(key, err)
	}
	return summary, nil
}

func notFoundOr(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrReportNotFound
	}
	return fmt.Errorf("failed to read report %s: %w", key, err)
}
