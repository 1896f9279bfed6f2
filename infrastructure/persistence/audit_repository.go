package persistence

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/ArnW0lf/ParaJose/domain/model"
	"github.com/ArnW0lf/ParaJose/infrastructure/logger"
)

// AuditRepository records every outbound platform API call in MongoDB.
// With a nil client it degrades to log-only so publishing never depends
// on the audit store being reachable.
type AuditRepository struct {
	collection *mongo.Collection
}

func NewAuditRepository(client *mongo.Client, database string) *AuditRepository {
	repo := &AuditRepository{}
	if client != nil {
		repo.collection = client.Database(database).Collection("api_call_audit")
	}
	return repo
}

func (r *AuditRepository) LogCall(ctx context.Context, platform, endpoint string, statusCode int, responseBody string) {
	log := logger.GetLogger()
	log.WithField("platform", platform).
		WithField("endpoint", endpoint).
		WithField("status_code", statusCode).
		Info("platform API call")

	if r == nil || r.collection == nil {
		return
	}
	entry := model.APICallAudit{
		Platform:   platform,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Response:   responseBody,
		CreatedAt:  time.Now().UTC(),
	}
	insertCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.collection.InsertOne(insertCtx, entry); err != nil {
		log.WithField("error", err).Warn("failed to persist API call audit entry")
	}
}
