package services

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"reflect"
	"sync"
	"testing"

	"github.com/Dosada05/retrogaming-api/models"
	"github.com/Dosada05/retrogaming-api/negotiation"
	"github.com/Dosada05/retrogaming-api/storage"
)

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	failKey string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeUploader) Upload(ctx context.Context, key, contentType string, r io.Reader) (*storage.UploadResult, error) {
	if key == f.failKey {
		return nil, errors.New("bucket is on fire")
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = body
	f.types[key] = contentType
	return &storage.UploadResult{Key: key, Location: f.GetPublicURL(key), ETag: "etag-" + key}, nil
}

func (f *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type stubLeaderboardService struct {
	board models.Leaderboard
	err   error
}

func (s stubLeaderboardService) GetLeaderboard(ctx context.Context) (models.Leaderboard, error) {
	return s.board, s.err
}

func TestSnapshotPublish(t *testing.T) {
	board := models.Leaderboard{
		{Game: "Pac-Man", Nickname: "Ace", Points: 9000},
		{Game: "Galaga", Nickname: "Blinky", Points: 120},
	}
	up := newFakeUploader()
	svc := NewSnapshotService(stubLeaderboardService{board: board}, up, "/public/leaderboard/", nil)

	res, err := svc.Publish(context.Background())
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if res.Entries != 2 {
		t.Errorf("Entries = %d, want 2", res.Entries)
	}
	if len(res.Objects) != 2 {
		t.Fatalf("Objects = %d, want 2", len(res.Objects))
	}

	jsonKey := "public/leaderboard/leaderboard.json"
	xmlKey := "public/leaderboard/leaderboard.xml"
	if up.types[jsonKey] != negotiation.FormatJSON.ContentType() {
		t.Errorf("json content type = %q", up.types[jsonKey])
	}
	if up.types[xmlKey] != negotiation.FormatXML.ContentType() {
		t.Errorf("xml content type = %q", up.types[xmlKey])
	}

	var fromJSON models.Leaderboard
	if err := json.Unmarshal(up.objects[jsonKey], &fromJSON); err != nil {
		t.Fatalf("decode json snapshot: %v", err)
	}
	var fromXML models.Leaderboard
	if err := xml.Unmarshal(up.objects[xmlKey], &fromXML); err != nil {
		t.Fatalf("decode xml snapshot: %v", err)
	}
	for i := range fromXML {
		fromXML[i].XMLName = xml.Name{}
	}
	if !reflect.DeepEqual(fromJSON, board) {
		t.Errorf("json snapshot = %+v, want %+v", fromJSON, board)
	}
	if !reflect.DeepEqual(fromXML, board) {
		t.Errorf("xml snapshot = %+v, want %+v", fromXML, board)
	}
}

func TestSnapshotPublishFailures(t *testing.T) {
	t.Run("leaderboard unavailable", func(t *testing.T) {
		svc := NewSnapshotService(stubLeaderboardService{err: ErrLeaderboardUnavailable}, newFakeUploader(), "", nil)
		_, err := svc.Publish(context.Background())
		if !errors.Is(err, ErrSnapshotPublishFailed) || !errors.Is(err, ErrLeaderboardUnavailable) {
			t.Fatalf("Publish() error = %v", err)
		}
	})

	t.Run("upload fails", func(t *testing.T) {
		up := newFakeUploader()
		up.failKey = "leaderboard.xml"
		svc := NewSnapshotService(stubLeaderboardService{board: models.Leaderboard{}}, up, "", nil)
		res, err := svc.Publish(context.Background())
		if !errors.Is(err, ErrSnapshotPublishFailed) {
			t.Fatalf("Publish() error = %v, want ErrSnapshotPublishFailed", err)
		}
		if res != nil {
			t.Fatalf("Publish() result = %+v alongside error", res)
		}
	})
}
