// internal/store/firestore/firestore.go

// Package firestore stores the document in Google Cloud Firestore.
package firestore

import (
	"context"
	"os"
	"sort"

	fs "cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yug2601/plc/internal/store"
)

type Config struct {
	ProjectID       string // empty => detect from credentials
	Collection      string
	Document        string
	CredentialsFile string // service account key, used only if the file exists
}

// Store is one Firestore document.
type Store struct {
	client *fs.Client
	doc    *fs.DocumentRef
}

// New opens a Firestore client. A service account key file is preferred
// when present; otherwise application default credentials are used.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*Store, error) {
	if cfg.Collection == "" || cfg.Document == "" {
		return nil, errors.New("firestore store: collection and document required")
	}

	projectID := cfg.ProjectID
	if projectID == "" {
		projectID = fs.DetectProjectID
	}

	opts, keyFile := credentialOptions(cfg.CredentialsFile)

	client, err := fs.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "firestore store: new client")
	}

	if keyFile {
		log.Info("firestore initialized with service account key", zap.String("file", cfg.CredentialsFile))
	} else {
		log.Info("firestore initialized with default credentials")
	}

	return &Store{
		client: client,
		doc:    client.Collection(cfg.Collection).Doc(cfg.Document),
	}, nil
}

func credentialOptions(file string) ([]option.ClientOption, bool) {
	if file == "" {
		return nil, false
	}
	if _, err := os.Stat(file); err != nil {
		return nil, false
	}
	return []option.ClientOption{option.WithCredentialsFile(file)}, true
}

// Set overwrites the document, creating it if needed.
func (s *Store) Set(ctx context.Context, fields map[string]interface{}) error {
	_, err := s.doc.Set(ctx, fields)
	return mapError(err)
}

// Update changes only the given top-level fields.
// Firestore rejects updates to a missing document with NotFound.
func (s *Store) Update(ctx context.Context, fields map[string]interface{}) error {
	_, err := s.doc.Update(ctx, toUpdates(fields))
	return mapError(err)
}

func (s *Store) Close() error {
	return s.client.Close()
}

// toUpdates uses FieldPath so numeric keys are taken literally.
func toUpdates(fields map[string]interface{}) []fs.Update {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]fs.Update, 0, len(keys))
	for _, k := range keys {
		out = append(out, fs.Update{FieldPath: fs.FieldPath{k}, Value: fields[k]})
	}
	return out
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return store.ErrNotFound
	}
	return errors.Wrap(err, "firestore store")
}
