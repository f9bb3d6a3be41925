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

	"github.com/fieldsight/device-monitor/internal/core/domain"
)

const identityCollection = "identities"

// IdentityRepository implements ports.IdentityRepository using MongoDB.
type IdentityRepository struct {
	coll *mongo.Collection
}

func NewIdentityRepository(db *mongo.Database) *IdentityRepository {
	return &IdentityRepository{coll: db.Collection(identityCollection)}
}

type mongoIdentity struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ConsumerNo      string             `bson:"consumer_no"`
	ConsumerName    string             `bson:"consumer_name"`
	ConsumerAddress string             `bson:"consumer_address"`
	CredentialHash  string             `bson:"credential_hash,omitempty"`
	Role            string             `bson:"role"`
	DeviceIDs       []string           `bson:"device_ids"`
	CreatedAt       int64              `bson:"created_at"`
	UpdatedAt       int64              `bson:"updated_at"`
}

func (m *mongoIdentity) toDomain() *domain.Identity {
	return &domain.Identity{
		ID:              m.ID.Hex(),
		ConsumerNo:      m.ConsumerNo,
		ConsumerName:    m.ConsumerName,
		ConsumerAddress: m.ConsumerAddress,
		CredentialHash:  m.CredentialHash,
		Role:            m.Role,
		DeviceIDs:       m.DeviceIDs,
		CreatedAt:       unixToTime(m.CreatedAt),
		UpdatedAt:       unixToTime(m.UpdatedAt),
	}
}

// Create inserts a new identity after verifying none of its device ids is
// bound elsewhere. The check-then-insert is not transactional; uniqueness
// is enforced at registration time, not by cross-identity locking.
func (r *IdentityRepository) Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	bound := r.coll.FindOne(ctx, bson.M{"device_ids": bson.M{"$in": identity.DeviceIDs}})
	if err := bound.Err(); err == nil {
		return nil, domain.ErrDuplicateDevice
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("check device binding: %w", err)
	}

	doc := mongoIdentity{
		ConsumerNo:      identity.ConsumerNo,
		ConsumerName:    identity.ConsumerName,
		ConsumerAddress: identity.ConsumerAddress,
		CredentialHash:  identity.CredentialHash,
		Role:            identity.Role,
		DeviceIDs:       identity.DeviceIDs,
		CreatedAt:       identity.CreatedAt.Unix(),
		UpdatedAt:       identity.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrConsumerExists
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}

	created := *identity
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *IdentityRepository) FindByDeviceID(ctx context.Context, deviceID string) (*domain.Identity, error) {
	return r.findOne(ctx, bson.M{"device_ids": deviceID})
}

func (r *IdentityRepository) FindByConsumerNo(ctx context.Context, consumerNo string) (*domain.Identity, error) {
	return r.findOne(ctx, bson.M{"consumer_no": consumerNo})
}

func (r *IdentityRepository) findOne(ctx context.Context, filter bson.M) (*domain.Identity, error) {
	var mi mongoIdentity
	if err := r.coll.FindOne(ctx, filter).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find identity: %w", err)
	}
	return mi.toDomain(), nil
}

// AddDevice appends deviceID to the owned set. $addToSet makes the call
// idempotent at the document level.
func (r *IdentityRepository) AddDevice(ctx context.Context, identityID, deviceID string) error {
	oid, err := primitive.ObjectIDFromHex(identityID)
	if err != nil {
		return fmt.Errorf("add device: bad identity id: %w", err)
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$addToSet": bson.M{"device_ids": deviceID},
		"$set":      bson.M{"updated_at": time.Now().UTC().Unix()},
	})
	if err != nil {
		return fmt.Errorf("add device: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (r *IdentityRepository) UpdateCredential(ctx context.Context, identityID, newHash string) error {
	oid, err := primitive.ObjectIDFromHex(identityID)
	if err != nil {
		return fmt.Errorf("update credential: bad identity id: %w", err)
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{
			"credential_hash": newHash,
			"updated_at":      time.Now().UTC().Unix(),
		},
	})
	if err != nil {
		return fmt.Errorf("update credential: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

// ListAll returns every identity, newest first. The credential hash is
// excluded at the projection level so it can never reach a caller.
func (r *IdentityRepository) ListAll(ctx context.Context) ([]*domain.Identity, error) {
	opts := options.Find().
		SetProjection(bson.M{"credential_hash": 0}).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoIdentity
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode identities: %w", err)
	}

	identities := make([]*domain.Identity, 0, len(docs))
	for i := range docs {
		identities = append(identities, docs[i].toDomain())
	}
	return identities, nil
}

// EnsureIndexes creates the identity collection indexes: consumer_no is
// the unique natural key, device_ids backs the ownership lookup on every
// telemetry event.
func (r *IdentityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "consumer_no", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "device_ids", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
