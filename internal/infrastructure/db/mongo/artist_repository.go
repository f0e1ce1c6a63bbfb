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
	"github.com/saaprojects/setlist/internal/core/ports"
)

const idxUniqueProfileAccount = "uniq_profile_account"

// ArtistProfileRepository persists artist profiles. A unique index on
// account_id enforces at most one profile per account.
type ArtistProfileRepository struct {
	profiles *mongo.Collection
}

func NewArtistProfileRepository(db *mongo.Database) *ArtistProfileRepository {
	return &ArtistProfileRepository{profiles: db.Collection(collectionProfiles)}
}

type pictureDoc struct {
	ContentType string `bson:"content_type"`
	Data        []byte `bson:"data"`
}

type profileDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	AccountID   primitive.ObjectID `bson:"account_id"`
	Bio         string             `bson:"bio,omitempty"`
	Genres      []string           `bson:"genres,omitempty"`
	Instruments []string           `bson:"instruments,omitempty"`
	Location    string             `bson:"location,omitempty"`
	Website     string             `bson:"website,omitempty"`
	Picture     *pictureDoc        `bson:"picture,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toProfileDoc(p *domain.ArtistProfile) profileDoc {
	return profileDoc{
		Bio:         p.Bio,
		Genres:      p.Genres,
		Instruments: p.Instruments,
		Location:    p.Location,
		Website:     p.Website,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d profileDoc) toDomain() *domain.ArtistProfile {
	genres := d.Genres
	if genres == nil {
		genres = []string{}
	}
	instruments := d.Instruments
	if instruments == nil {
		instruments = []string{}
	}
	return &domain.ArtistProfile{
		ID:          d.ID.Hex(),
		AccountID:   d.AccountID.Hex(),
		Bio:         d.Bio,
		Genres:      genres,
		Instruments: instruments,
		Location:    d.Location,
		Website:     d.Website,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func (r *ArtistProfileRepository) FindByAccountID(ctx context.Context, accountID string) (*domain.ArtistProfile, error) {
	oid, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc profileDoc
	if err := r.profiles.FindOne(ctx, bson.M{"account_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return doc.toDomain(), nil
}

// Update writes only the fields present in the patch and returns the profile
// as stored afterwards.
func (r *ArtistProfileRepository) Update(ctx context.Context, accountID string, patch domain.ProfilePatch) (*domain.ArtistProfile, error) {
	oid, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Bio != nil {
		set["bio"] = *patch.Bio
	}
	if patch.Genres != nil {
		set["genres"] = *patch.Genres
	}
	if patch.Instruments != nil {
		set["instruments"] = *patch.Instruments
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Website != nil {
		set["website"] = *patch.Website
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc profileDoc
	err = r.profiles.FindOneAndUpdate(ctx,
		bson.M{"account_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ArtistProfileRepository) SetPicture(ctx context.Context, accountID string, pic domain.ProfilePicture) error {
	oid, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return domain.ErrProfileNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.profiles.UpdateOne(ctx, bson.M{"account_id": oid}, bson.M{"$set": bson.M{
		"picture":    pictureDoc{ContentType: pic.ContentType, Data: pic.Data},
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("set picture: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *ArtistProfileRepository) GetPicture(ctx context.Context, accountID string) (*domain.ProfilePicture, error) {
	oid, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc profileDoc
	err = r.profiles.FindOne(ctx,
		bson.M{"account_id": oid},
		options.FindOne().SetProjection(bson.M{"picture": 1}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get picture: %w", err)
	}
	if doc.Picture == nil {
		return nil, domain.ErrProfileNotFound
	}
	return &domain.ProfilePicture{ContentType: doc.Picture.ContentType, Data: doc.Picture.Data}, nil
}

// searchRowDoc is the shape produced by the search aggregation after joining
// the owning account.
type searchRowDoc struct {
	profileDoc `bson:",inline"`
	Account    struct {
		Username    string `bson:"username"`
		DisplayName string `bson:"display_name"`
	} `bson:"account"`
}

// Search joins profiles with their owning accounts, keeps active artists
// only, and applies filter + pagination.
func (r *ArtistProfileRepository) Search(ctx context.Context, filter ports.SearchArtistsFilter) ([]ports.ArtistSearchRow, int64, error) {
	match := bson.M{}
	if filter.Genre != "" {
		match["genres"] = filter.Genre
	}
	if filter.Instrument != "" {
		match["instruments"] = filter.Instrument
	}
	if filter.Location != "" {
		match["location"] = primitive.Regex{Pattern: filter.Location, Options: "i"}
	}

	base := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionAccounts,
			"localField":   "account_id",
			"foreignField": "_id",
			"as":           "account",
		}}},
		{{Key: "$unwind", Value: "$account"}},
		{{Key: "$match", Value: bson.M{"account.active": true}}},
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.countSearch(ctx, base)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((filter.Page - 1) * filter.Limit)
	page := append(mongo.Pipeline{}, base...)
	page = append(page,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$skip", Value: skip}},
		bson.D{{Key: "$limit", Value: int64(filter.Limit)}},
		bson.D{{Key: "$project", Value: bson.M{"picture": 0}}},
	)

	cur, err := r.profiles.Aggregate(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("search profiles: %w", err)
	}
	defer cur.Close(ctx)

	var rows []ports.ArtistSearchRow
	for cur.Next(ctx) {
		var doc searchRowDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode search row: %w", err)
		}
		rows = append(rows, ports.ArtistSearchRow{
			Profile:     *doc.profileDoc.toDomain(),
			Username:    doc.Account.Username,
			DisplayName: doc.Account.DisplayName,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("search profiles: %w", err)
	}
	return rows, total, nil
}

func (r *ArtistProfileRepository) countSearch(ctx context.Context, base mongo.Pipeline) (int64, error) {
	pipeline := append(append(mongo.Pipeline{}, base...), bson.D{{Key: "$count", Value: "total"}})

	cur, err := r.profiles.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	defer cur.Close(ctx)

	var result struct {
		Total int64 `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&result); err != nil {
			return 0, fmt.Errorf("decode count: %w", err)
		}
	}
	return result.Total, nil
}

// EnsureIndexes creates the one-profile-per-account unique index.
func (r *ArtistProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "account_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(idxUniqueProfileAccount),
		},
		{Keys: bson.D{{Key: "genres", Value: 1}}},
		{Keys: bson.D{{Key: "instruments", Value: 1}}},
	}

	_, err := r.profiles.Indexes().CreateMany(ctx, indexes)
	return err
}
