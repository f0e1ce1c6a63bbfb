package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/saaprojects/setlist/internal/core/domain"
)

const (
	collectionCollaborations = "collaborations"

	idxUniquePendingPair = "uniq_pending_pair"
)

// CollaborationRepository persists collaboration requests. A partial unique
// index on (requester_id, target_artist_id), filtered to pending documents,
// enforces the one-pending-request-per-pair invariant even under concurrent
// creates.
type CollaborationRepository struct {
	col *mongo.Collection
}

func NewCollaborationRepository(db *mongo.Database) *CollaborationRepository {
	return &CollaborationRepository{col: db.Collection(collectionCollaborations)}
}

type collaborationDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	RequesterID    primitive.ObjectID `bson:"requester_id"`
	TargetArtistID primitive.ObjectID `bson:"target_artist_id"`
	Message        string             `bson:"message"`
	ProjectType    string             `bson:"project_type,omitempty"`
	Status         string             `bson:"status"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d collaborationDoc) toDomain() *domain.Collaboration {
	return &domain.Collaboration{
		ID:             d.ID.Hex(),
		RequesterID:    d.RequesterID.Hex(),
		TargetArtistID: d.TargetArtistID.Hex(),
		Message:        d.Message,
		ProjectType:    d.ProjectType,
		Status:         domain.CollaborationStatus(d.Status),
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
}

func (r *CollaborationRepository) Create(ctx context.Context, c *domain.Collaboration) (*domain.Collaboration, error) {
	requesterID, err := primitive.ObjectIDFromHex(c.RequesterID)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	targetID, err := primitive.ObjectIDFromHex(c.TargetArtistID)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	doc := collaborationDoc{
		RequesterID:    requesterID,
		TargetArtistID: targetID,
		Message:        c.Message,
		ProjectType:    c.ProjectType,
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicatePendingCollaboration
		}
		return nil, fmt.Errorf("insert collaboration: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *CollaborationRepository) FindByID(ctx context.Context, id string) (*domain.Collaboration, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCollaborationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc collaborationDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCollaborationNotFound
		}
		return nil, fmt.Errorf("find collaboration: %w", err)
	}
	return doc.toDomain(), nil
}

// Resolve transitions the request to a terminal status. The filter keys on
// the stored status still being pending so that two racing resolutions cannot
// both apply.
func (r *CollaborationRepository) Resolve(ctx context.Context, id string, to domain.CollaborationStatus) (*domain.Collaboration, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCollaborationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc collaborationDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "status": string(domain.CollaborationPending)},
		bson.M{"$set": bson.M{"status": string(to), "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Either the request does not exist or it is no longer pending.
			if _, findErr := r.FindByID(ctx, id); findErr == nil {
				return nil, domain.ErrInvalidCollaborationTransition
			}
			return nil, domain.ErrCollaborationNotFound
		}
		return nil, fmt.Errorf("resolve collaboration: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CollaborationRepository) ListForAccount(ctx context.Context, accountID string) ([]*domain.Collaboration, error) {
	oid, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx,
		bson.M{"$or": []bson.M{{"requester_id": oid}, {"target_artist_id": oid}}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list collaborations: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Collaboration
	for cur.Next(ctx) {
		var doc collaborationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode collaboration: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list collaborations: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the partial unique index backing the pending-pair invariant.
func (r *CollaborationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "requester_id", Value: 1},
				{Key: "target_artist_id", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName(idxUniquePendingPair).
				SetPartialFilterExpression(bson.M{"status": string(domain.CollaborationPending)}),
		},
		{Keys: bson.D{{Key: "target_artist_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
