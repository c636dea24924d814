package mongo

import (
	"context"
	"time"

	"github.com/Perfect-Cube/Reflex/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SimulationRepository interface {
	Insert(ctx context.Context, run *models.SimulationRun) error
	ListRecent(ctx context.Context, limit int) ([]models.SimulationRun, error)
}

type simulationRepo struct {
	col *mongo.Collection
}

func NewSimulationRepo(db *mongo.Database) SimulationRepository {
	col := db.Collection("simulation_runs")

	// best-effort index; listing sorts on it
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "started_at", Value: -1}},
	})

	return &simulationRepo{col: col}
}

func (r *simulationRepo) Insert(ctx context.Context, run *models.SimulationRun) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, run)
	return err
}

func (r *simulationRepo) ListRecent(ctx context.Context, limit int) ([]models.SimulationRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var runs []models.SimulationRun
	if err := cur.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}
