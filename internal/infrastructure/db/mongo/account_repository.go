package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/saaprojects/setlist/internal/core/domain"
)

const (
	collectionAccounts = "accounts"
	collectionProfiles = "artist_profiles"

	idxUniqueEmail    = "uniq_email"
	idxUniqueUsername = "uniq_username"
)

// AccountRepository persists identity records in MongoDB. The unique indexes
// on email and username are the concurrency-correctness mechanism for
// registration: racing inserts on the same identity surface as duplicate-key
// errors, never as two successful writes.
type AccountRepository struct {
	client   *mongo.Client
	accounts *mongo.Collection
	profiles *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{
		client:   db.Client(),
		accounts: db.Collection(collectionAccounts),
		profiles: db.Collection(collectionProfiles),
	}
}

type accountDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Username     string             `bson:"username"`
	DisplayName  string             `bson:"display_name"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Active       bool               `bson:"active"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toAccountDoc(a *domain.Account) accountDoc {
	return accountDoc{
		Email:        strings.ToLower(a.Email),
		Username:     a.Username,
		DisplayName:  a.DisplayName,
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		Active:       a.Active,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (d accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		Username:     d.Username,
		DisplayName:  d.DisplayName,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		Active:       d.Active,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

// Create inserts a new account. Duplicate-key violations are mapped to the
// domain duplicate errors by inspecting which unique index rejected the write.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toAccountDoc(account)
	res, err := r.accounts.InsertOne(ctx, doc)
	if err != nil {
		return nil, classifyAccountWriteError(err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// CreateArtist inserts the account and its artist profile in a single
// transaction: if the profile write fails, the account write is rolled back.
func (r *AccountRepository) CreateArtist(ctx context.Context, account *domain.Account, profile *domain.ArtistProfile) (*domain.Account, *domain.ArtistProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sess, err := r.client.StartSession()
	if err != nil {
		return nil, nil, fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	accDoc := toAccountDoc(account)
	profDoc := toProfileDoc(profile)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.accounts.InsertOne(sc, accDoc)
		if err != nil {
			return nil, classifyAccountWriteError(err)
		}
		accDoc.ID = res.InsertedID.(primitive.ObjectID)

		profDoc.AccountID = accDoc.ID
		profRes, err := r.profiles.InsertOne(sc, profDoc)
		if err != nil {
			return nil, fmt.Errorf("insert artist profile: %w", err)
		}
		profDoc.ID = profRes.InsertedID.(primitive.ObjectID)
		return nil, nil
	})
	if err != nil {
		return nil, nil, err
	}

	return accDoc.toDomain(), profDoc.toDomain(), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// FindByIdentifier matches the identifier against either email or username.
func (r *AccountRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"$or": []bson.M{
		{"email": strings.ToLower(identifier)},
		{"username": identifier},
	}})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := r.accounts.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

// Deactivate clears the active flag (soft delete).
func (r *AccountRepository) Deactivate(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.accounts.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"active":     false,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("deactivate account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// EnsureIndexes creates the unique indexes backing the identity invariants.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(idxUniqueEmail),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(idxUniqueUsername),
		},
	}

	_, err := r.accounts.Indexes().CreateMany(ctx, indexes)
	return err
}

// classifyAccountWriteError maps a duplicate-key violation to the domain
// error for the field whose unique index rejected the write.
func classifyAccountWriteError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("insert account: %w", err)
	}
	if strings.Contains(err.Error(), idxUniqueUsername) {
		return domain.ErrDuplicateUsername
	}
	return domain.ErrDuplicateEmail
}
