package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/KamalGanth/quarry-ops/internal/core/domain"
)

// RecordRepository implements ports.RecordRepository over five collections,
// one per domain.Table. The collection map is keyed by the enum so no
// collection name is ever built from caller input.
type RecordRepository struct {
	client *mongo.Client
	colls  map[domain.Table]*mongo.Collection
}

func NewRecordRepository(client *mongo.Client, db *mongo.Database) *RecordRepository {
	colls := make(map[domain.Table]*mongo.Collection, len(domain.Tables()))
	for _, table := range domain.Tables() {
		colls[table] = db.Collection(string(table))
	}
	return &RecordRepository{client: client, colls: colls}
}

// --- bson document mirrors ---

type productionDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Timestamp   time.Time          `bson:"timestamp"`
	HourlyTons  float64            `bson:"hourly_tons"`
	DailyTons   float64            `bson:"daily_tons"`
	BlockW      float64            `bson:"block_w"`
	BlockH      float64            `bson:"block_h"`
	BlockL      float64            `bson:"block_l"`
	BlockVolume float64            `bson:"block_volume"`
	Notes       string             `bson:"notes,omitempty"`
	Username    string             `bson:"username"`
}

type equipmentDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	EquipmentType  string             `bson:"equipment_type"`
	EquipmentID    string             `bson:"equipment_id"`
	Status         string             `bson:"status"`
	StartTime      string             `bson:"start_time"`
	EndTime        string             `bson:"end_time"`
	RunningTime    float64            `bson:"running_time"`
	ProductionTons float64            `bson:"production_tons"`
	Username       string             `bson:"username"`
	LastUpdated    time.Time          `bson:"last_updated"`
}

type inventoryDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Location     string             `bson:"location"`
	MaterialType string             `bson:"material_type"`
	Quantity     float64            `bson:"quantity"`
	Unit         string             `bson:"unit"`
	DateStocked  time.Time          `bson:"date_stocked"`
	Username     string             `bson:"username"`
}

type workerDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Role         string             `bson:"role"`
	Shift        string             `bson:"shift"`
	StartTime    string             `bson:"start_time"`
	EndTime      string             `bson:"end_time"`
	WorkingHours float64            `bson:"working_hours"`
	WorkingPlace string             `bson:"working_place"`
	HiredOn      time.Time          `bson:"hired_on"`
	Username     string             `bson:"username"`
}

type environmentDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Timestamp        time.Time          `bson:"timestamp"`
	NoiseDB          float64            `bson:"noise_db"`
	AirQuality       string             `bson:"air_quality"`
	WaterUsageL      float64            `bson:"water_usage_l"`
	ComplianceStatus string             `bson:"compliance_status"`
	Notes            string             `bson:"notes,omitempty"`
	Username         string             `bson:"username"`
}

// ownerFilter scopes a query to one owner; empty owner means all rows.
func ownerFilter(owner string) bson.M {
	if owner == "" {
		return bson.M{}
	}
	return bson.M{"username": owner}
}

// latestFirst orders by _id descending; ObjectIDs are monotonic per insert
// so this is reverse insertion order.
func latestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
}

// --- production ---

func (r *RecordRepository) InsertProduction(ctx context.Context, rec *domain.ProductionRecord) (string, error) {
	doc := productionDoc{
		ID:          primitive.NewObjectID(),
		Timestamp:   rec.Timestamp.UTC(),
		HourlyTons:  rec.HourlyTons,
		DailyTons:   rec.DailyTons,
		BlockW:      rec.BlockW,
		BlockH:      rec.BlockH,
		BlockL:      rec.BlockL,
		BlockVolume: rec.BlockVolume,
		Notes:       rec.Notes,
		Username:    rec.Owner,
	}
	if _, err := r.colls[domain.TableProduction].InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

func (r *RecordRepository) ListProduction(ctx context.Context, owner string) ([]*domain.ProductionRecord, error) {
	cur, err := r.colls[domain.TableProduction].Find(ctx, ownerFilter(owner), latestFirst())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.ProductionRecord
	for cur.Next(ctx) {
		var d productionDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &domain.ProductionRecord{
			ID:          d.ID.Hex(),
			Timestamp:   d.Timestamp.UTC(),
			HourlyTons:  d.HourlyTons,
			DailyTons:   d.DailyTons,
			BlockW:      d.BlockW,
			BlockH:      d.BlockH,
			BlockL:      d.BlockL,
			BlockVolume: d.BlockVolume,
			Notes:       d.Notes,
			Owner:       d.Username,
		})
	}
	return out, cur.Err()
}

// --- equipment ---

func equipmentToDomain(d equipmentDoc) *domain.EquipmentRecord {
	return &domain.EquipmentRecord{
		ID:             d.ID.Hex(),
		EquipmentType:  d.EquipmentType,
		EquipmentID:    d.EquipmentID,
		Status:         domain.EquipmentStatus(d.Status),
		StartTime:      d.StartTime,
		EndTime:        d.EndTime,
		RunningTime:    d.RunningTime,
		ProductionTons: d.ProductionTons,
		Owner:          d.Username,
		LastUpdated:    d.LastUpdated.UTC(),
	}
}

func (r *RecordRepository) InsertEquipment(ctx context.Context, rec *domain.EquipmentRecord) (string, error) {
	doc := equipmentDoc{
		ID:             primitive.NewObjectID(),
		EquipmentType:  rec.EquipmentType,
		EquipmentID:    rec.EquipmentID,
		Status:         string(rec.Status),
		StartTime:      rec.StartTime,
		EndTime:        rec.EndTime,
		RunningTime:    rec.RunningTime,
		ProductionTons: rec.ProductionTons,
		Username:       rec.Owner,
		LastUpdated:    rec.LastUpdated.UTC(),
	}
	if _, err := r.colls[domain.TableEquipment].InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

func (r *RecordRepository) ListEquipment(ctx context.Context, owner string) ([]*domain.EquipmentRecord, error) {
	cur, err := r.colls[domain.TableEquipment].Find(ctx, ownerFilter(owner), latestFirst())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.EquipmentRecord
	for cur.Next(ctx) {
		var d equipmentDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, equipmentToDomain(d))
	}
	return out, cur.Err()
}

// UpsertEquipmentByBusinessKey performs the read-then-write as a single
// findAndModify. The newest matching document wins the match (sort by _id
// descending); $setOnInsert carries the identity and immutable fields used
// only when no match exists. The index on equipment_id is non-unique, so
// two concurrent first submissions for a brand-new key can both insert;
// the newest row then wins every later match and the older one stays
// behind as history.
func (r *RecordRepository) UpsertEquipmentByBusinessKey(ctx context.Context, rec *domain.EquipmentRecord) (*domain.EquipmentRecord, bool, error) {
	newID := primitive.NewObjectID()

	filter := bson.M{"equipment_id": rec.EquipmentID}
	update := bson.M{
		"$set": bson.M{
			"status":          string(rec.Status),
			"start_time":      rec.StartTime,
			"end_time":        rec.EndTime,
			"running_time":    rec.RunningTime,
			"production_tons": rec.ProductionTons,
			"last_updated":    rec.LastUpdated.UTC(),
		},
		"$setOnInsert": bson.M{
			"_id":            newID,
			"equipment_type": rec.EquipmentType,
			"equipment_id":   rec.EquipmentID,
			"username":       rec.Owner,
		},
	}

	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetUpsert(true).
		SetReturnDocument(options.After)

	var d equipmentDoc
	if err := r.colls[domain.TableEquipment].FindOneAndUpdate(ctx, filter, update, opts).Decode(&d); err != nil {
		return nil, false, fmt.Errorf("upsert equipment: %w", err)
	}

	return equipmentToDomain(d), d.ID == newID, nil
}

// --- inventory ---

func (r *RecordRepository) InsertInventory(ctx context.Context, rec *domain.InventoryRecord) (string, error) {
	doc := inventoryDoc{
		ID:           primitive.NewObjectID(),
		Location:     rec.Location,
		MaterialType: rec.MaterialType,
		Quantity:     rec.Quantity,
		Unit:         rec.Unit,
		DateStocked:  rec.DateStocked.UTC(),
		Username:     rec.Owner,
	}
	if _, err := r.colls[domain.TableInventory].InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

func (r *RecordRepository) ListInventory(ctx context.Context, owner string) ([]*domain.InventoryRecord, error) {
	cur, err := r.colls[domain.TableInventory].Find(ctx, ownerFilter(owner), latestFirst())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.InventoryRecord
	for cur.Next(ctx) {
		var d inventoryDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &domain.InventoryRecord{
			ID:           d.ID.Hex(),
			Location:     d.Location,
			MaterialType: d.MaterialType,
			Quantity:     d.Quantity,
			Unit:         d.Unit,
			DateStocked:  d.DateStocked.UTC(),
			Owner:        d.Username,
		})
	}
	return out, cur.Err()
}

// --- workers ---

func (r *RecordRepository) InsertWorker(ctx context.Context, rec *domain.WorkerRecord) (string, error) {
	doc := workerDoc{
		ID:           primitive.NewObjectID(),
		Name:         rec.Name,
		Role:         rec.Role,
		Shift:        rec.Shift,
		StartTime:    rec.StartTime,
		EndTime:      rec.EndTime,
		WorkingHours: rec.WorkingHours,
		WorkingPlace: rec.WorkingPlace,
		HiredOn:      rec.HiredOn.UTC(),
		Username:     rec.Owner,
	}
	if _, err := r.colls[domain.TableWorkers].InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

func (r *RecordRepository) ListWorkers(ctx context.Context, owner string) ([]*domain.WorkerRecord, error) {
	cur, err := r.colls[domain.TableWorkers].Find(ctx, ownerFilter(owner), latestFirst())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.WorkerRecord
	for cur.Next(ctx) {
		var d workerDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &domain.WorkerRecord{
			ID:           d.ID.Hex(),
			Name:         d.Name,
			Role:         d.Role,
			Shift:        d.Shift,
			StartTime:    d.StartTime,
			EndTime:      d.EndTime,
			WorkingHours: d.WorkingHours,
			WorkingPlace: d.WorkingPlace,
			HiredOn:      d.HiredOn.UTC(),
			Owner:        d.Username,
		})
	}
	return out, cur.Err()
}

// --- environment ---

func (r *RecordRepository) InsertEnvironment(ctx context.Context, rec *domain.EnvironmentRecord) (string, error) {
	doc := environmentDoc{
		ID:               primitive.NewObjectID(),
		Timestamp:        rec.Timestamp.UTC(),
		NoiseDB:          rec.NoiseDB,
		AirQuality:       string(rec.AirQuality),
		WaterUsageL:      rec.WaterUsageL,
		ComplianceStatus: string(rec.ComplianceStatus),
		Notes:            rec.Notes,
		Username:         rec.Owner,
	}
	if _, err := r.colls[domain.TableEnvironment].InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

func (r *RecordRepository) ListEnvironment(ctx context.Context, owner string) ([]*domain.EnvironmentRecord, error) {
	cur, err := r.colls[domain.TableEnvironment].Find(ctx, ownerFilter(owner), latestFirst())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.EnvironmentRecord
	for cur.Next(ctx) {
		var d environmentDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &domain.EnvironmentRecord{
			ID:               d.ID.Hex(),
			Timestamp:        d.Timestamp.UTC(),
			NoiseDB:          d.NoiseDB,
			AirQuality:       domain.AirQuality(d.AirQuality),
			WaterUsageL:      d.WaterUsageL,
			ComplianceStatus: domain.ComplianceStatus(d.ComplianceStatus),
			Notes:            d.Notes,
			Owner:            d.Username,
		})
	}
	return out, cur.Err()
}

// --- cross-table ---

func (r *RecordRepository) CountByOwner(ctx context.Context, table domain.Table, owner string) (int64, error) {
	coll, ok := r.colls[table]
	if !ok {
		return 0, fmt.Errorf("%w: unknown table %q", domain.ErrInvalidInput, table)
	}
	return coll.CountDocuments(ctx, ownerFilter(owner))
}

// ClearAll wipes the five operational collections inside one multi-document
// transaction, so readers either see everything or nothing removed. The
// users collection is not part of the map and can never be touched here.
func (r *RecordRepository) ClearAll(ctx context.Context) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, table := range domain.Tables() {
			if _, err := r.colls[table].DeleteMany(sc, bson.M{}); err != nil {
				return nil, fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil, nil
	})
	return err
}

// EnsureIndexes creates the supporting indexes on the record collections.
// equipment_id is indexed but deliberately not unique: history rows for one
// machine coexist, the upsert targets the newest.
func (r *RecordRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, table := range domain.Tables() {
		if _, err := r.colls[table].Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "username", Value: 1}},
		}); err != nil {
			return fmt.Errorf("index %s: %w", table, err)
		}
	}

	_, err := r.colls[domain.TableEquipment].Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "equipment_id", Value: 1}},
	})
	return err
}
