// Package store archives finished pipeline runs. A run record couples the
// routed layout with its rule-check report so past boards can be inspected,
// re-rendered, or compared without recomputation.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pcbforge/pcbforge/pkg/board"
	"github.com/pcbforge/pcbforge/pkg/drc"
	pcberrors "github.com/pcbforge/pcbforge/pkg/errors"
)

// DefaultDatabase is the database name used when none is configured.
const DefaultDatabase = "pcbforge"

// runsCollection holds one document per pipeline run.
const runsCollection = "runs"

// connectTimeout bounds the initial server handshake.
const connectTimeout = 10 * time.Second

// Run is one archived pipeline run.
type Run struct {
	RunID      string        `bson:"run_id" json:"run_id"`
	Design     string        `bson:"design,omitempty" json:"design,omitempty"`
	DesignHash string        `bson:"design_hash,omitempty" json:"design_hash,omitempty"`
	CreatedAt  time.Time     `bson:"created_at" json:"created_at"`
	Layout     *board.Layout `bson:"layout" json:"layout"`
	Report     *drc.Report   `bson:"report,omitempty" json:"report,omitempty"`
}

// Summary is the listing view of a run, without the layout payload.
type Summary struct {
	RunID      string    `bson:"run_id" json:"run_id"`
	Design     string    `bson:"design,omitempty" json:"design,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	Violations int       `bson:"violations" json:"violations"`
	Passed     bool      `bson:"passed" json:"passed"`
}

// NewRun builds an archive record from pipeline outputs. The report may be
// nil when the check stage was skipped.
func NewRun(layout *board.Layout, report *drc.Report, designHash string) *Run {
	return &Run{
		RunID:      layout.RunID,
		Design:     layout.Design,
		DesignHash: designHash,
		CreatedAt:  time.Now().UTC(),
		Layout:     layout,
		Report:     report,
	}
}

// summarize projects a run into its listing view.
func (r *Run) summarize() Summary {
	s := Summary{
		RunID:     r.RunID,
		Design:    r.Design,
		CreatedAt: r.CreatedAt,
		Passed:    true,
	}
	if r.Report != nil {
		s.Violations = r.Report.Total
		s.Passed = r.Report.Passed
	}
	return s
}

// runFilter builds the list query. An empty design matches all runs.
func runFilter(design string) bson.M {
	if design == "" {
		return bson.M{}
	}
	return bson.M{"design": design}
}

// Store is the run archive contract.
type Store interface {
	// SaveRun inserts or replaces a run by its run ID.
	SaveRun(ctx context.Context, run *Run) error

	// LoadRun returns the archived run, or an error with code
	// RUN_NOT_FOUND when no such run exists.
	LoadRun(ctx context.Context, runID string) (*Run, error)

	// ListRuns returns recent runs, newest first, optionally filtered by
	// design name. A non-positive limit returns everything.
	ListRuns(ctx context.Context, design string, limit int) ([]Summary, error)

	// DeleteRun removes a run. Deleting a missing run is not an error.
	DeleteRun(ctx context.Context, runID string) error

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}

// MongoStore archives runs in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	runs   *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

// NewMongoStore connects to MongoDB and prepares the runs collection. An
// empty database name falls back to DefaultDatabase.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, pcberrors.Wrap(pcberrors.ErrCodeStore, err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, pcberrors.Wrap(pcberrors.ErrCodeStore, err, "pinging mongodb")
	}

	runs := client.Database(database).Collection(runsCollection)
	_, err = runs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "run_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, pcberrors.Wrap(pcberrors.ErrCodeStore, err, "creating run index")
	}

	return &MongoStore{client: client, runs: runs}, nil
}

// SaveRun upserts a run keyed by its run ID.
func (s *MongoStore) SaveRun(ctx context.Context, run *Run) error {
	if run == nil || run.RunID == "" {
		return pcberrors.New(pcberrors.ErrCodeStore, "run must carry a run ID")
	}
	_, err := s.runs.ReplaceOne(ctx,
		bson.M{"run_id": run.RunID},
		run,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return pcberrors.Wrap(pcberrors.ErrCodeStore, err, "saving run %s", run.RunID)
	}
	return nil
}

// LoadRun fetches one archived run by ID.
func (s *MongoStore) LoadRun(ctx context.Context, runID string) (*Run, error) {
	var run Run
	err := s.runs.FindOne(ctx, bson.M{"run_id": runID}).Decode(&run)
	if err == mongo.ErrNoDocuments {
		return nil, pcberrors.New(pcberrors.ErrCodeRunNotFound, "run %q not found", runID)
	}
	if err != nil {
		return nil, pcberrors.Wrap(pcberrors.ErrCodeStore, err, "loading run %s", runID)
	}
	return &run, nil
}

// ListRuns returns run summaries, newest first. The layout payload is
// excluded from the query so listings stay cheap.
func (s *MongoStore) ListRuns(ctx context.Context, design string, limit int) ([]Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"layout": 0})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.runs.Find(ctx, runFilter(design), opts)
	if err != nil {
		return nil, pcberrors.Wrap(pcberrors.ErrCodeStore, err, "listing runs")
	}
	defer cur.Close(ctx)

	var out []Summary
	for cur.Next(ctx) {
		var run Run
		if err := cur.Decode(&run); err != nil {
			return nil, pcberrors.Wrap(pcberrors.ErrCodeStore, err, "decoding run")
		}
		out = append(out, run.summarize())
	}
	if err := cur.Err(); err != nil {
		return nil, pcberrors.Wrap(pcberrors.ErrCodeStore, err, "iterating runs")
	}
	return out, nil
}

// DeleteRun removes a run by ID.
func (s *MongoStore) DeleteRun(ctx context.Context, runID string) error {
	if _, err := s.runs.DeleteOne(ctx, bson.M{"run_id": runID}); err != nil {
		return pcberrors.Wrap(pcberrors.ErrCodeStore, err, "deleting run %s", runID)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
