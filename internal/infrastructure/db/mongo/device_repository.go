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

	"github.com/fieldsight/device-monitor/internal/core/domain"
)

const deviceCollection = "devices"

// DeviceRepository implements ports.DeviceRepository using MongoDB.
type DeviceRepository struct {
	coll *mongo.Collection
}

func NewDeviceRepository(db *mongo.Database) *DeviceRepository {
	return &DeviceRepository{coll: db.Collection(deviceCollection)}
}

type mongoDevice struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	DeviceID    string             `bson:"device_id"`
	Data        bson.M             `bson:"data"`
	LastUpdated time.Time          `bson:"last_updated"`
}

func (m *mongoDevice) toDomain() *domain.DeviceRecord {
	return &domain.DeviceRecord{
		ID:          m.ID.Hex(),
		DeviceID:    m.DeviceID,
		Payload:     domain.Payload(m.Data),
		LastUpdated: m.LastUpdated.UTC(),
	}
}

func (r *DeviceRepository) FindByID(ctx context.Context, deviceID string) (*domain.DeviceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var md mongoDevice
	if err := r.coll.FindOne(ctx, bson.M{"device_id": deviceID}).Decode(&md); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDeviceNotFound
		}
		return nil, fmt.Errorf("find device: %w", err)
	}
	return md.toDomain(), nil
}

func (r *DeviceRepository) FindByIDs(ctx context.Context, deviceIDs []string) ([]*domain.DeviceRecord, error) {
	if len(deviceIDs) == 0 {
		return []*domain.DeviceRecord{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "last_updated", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"device_id": bson.M{"$in": deviceIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find devices: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoDevice
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode devices: %w", err)
	}

	records := make([]*domain.DeviceRecord, 0, len(docs))
	for i := range docs {
		records = append(records, docs[i].toDomain())
	}
	return records, nil
}

// MergeUpsert folds fields into the device's payload in a single atomic
// UpdateOne with upsert. Each field becomes its own dotted $set path, so
// concurrent merges for the same device interleave per field on the server
// (serializable last-write-wins) instead of racing on a read-modify-write
// of the whole document.
func (r *DeviceRepository) MergeUpsert(ctx context.Context, deviceID string, fields domain.Payload) (*domain.DeviceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{"last_updated": now, "data." + domain.ReceivedAtField: now}
	for k, v := range fields {
		if !validFieldName(k) {
			continue
		}
		set["data."+k] = v
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var md mongoDevice
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"device_id": deviceID}, bson.M{"$set": set}, opts).Decode(&md)
	if err != nil {
		return nil, fmt.Errorf("merge device %s: %w", deviceID, err)
	}
	return md.toDomain(), nil
}

// EnsureIndexes creates the unique device_id index and the last_updated
// index backing the descending list sort.
func (r *DeviceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "device_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "last_updated", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// validFieldName rejects telemetry field names Mongo cannot store as
// document keys. Such fields are skipped rather than failing the merge.
func validFieldName(k string) bool {
	return k != "" && !strings.HasPrefix(k, "$") && !strings.Contains(k, ".")
}
