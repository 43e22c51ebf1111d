package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/expertbridge/marketplace-api/internal/core/domain"
)

const (
	clientProfilesCollection = "client_profiles"
	expertProfilesCollection = "expert_profiles"
)

// MongoProfileRepository persists client and expert profiles, one per owning
// account, enforced by the unique account_id index.
type MongoProfileRepository struct {
	clients *mongo.Collection
	experts *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{
		clients: db.Collection(clientProfilesCollection),
		experts: db.Collection(expertProfilesCollection),
	}
}

type mongoClientProfile struct {
	AccountID   string `bson:"account_id"`
	CompanyName string `bson:"company_name"`
	Industry    string `bson:"industry,omitempty"`
	Description string `bson:"description,omitempty"`
	Website     string `bson:"website,omitempty"`
	CompanySize string `bson:"company_size,omitempty"`
	Location    string `bson:"location,omitempty"`
	Phone       string `bson:"phone,omitempty"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
}

func (m mongoClientProfile) toDomain() *domain.ClientProfile {
	return &domain.ClientProfile{
		AccountID:   m.AccountID,
		CompanyName: m.CompanyName,
		Industry:    m.Industry,
		Description: m.Description,
		Website:     m.Website,
		CompanySize: m.CompanySize,
		Location:    m.Location,
		Phone:       m.Phone,
		CreatedAt:   unixToTime(m.CreatedAt),
		UpdatedAt:   unixToTime(m.UpdatedAt),
	}
}

type mongoExpertProfile struct {
	AccountID       string  `bson:"account_id"`
	FirstName       string  `bson:"first_name"`
	LastName        string  `bson:"last_name"`
	Bio             string  `bson:"bio,omitempty"`
	Expertise       string  `bson:"expertise,omitempty"`
	YearsExperience int     `bson:"years_experience,omitempty"`
	HourlyRate      float64 `bson:"hourly_rate,omitempty"`
	Location        string  `bson:"location,omitempty"`
	Phone           string  `bson:"phone,omitempty"`
	Website         string  `bson:"website,omitempty"`
	LinkedIn        string  `bson:"linkedin,omitempty"`
	CreatedAt       int64   `bson:"created_at"`
	UpdatedAt       int64   `bson:"updated_at"`
}

func (m mongoExpertProfile) toDomain() *domain.ExpertProfile {
	return &domain.ExpertProfile{
		AccountID:       m.AccountID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Bio:             m.Bio,
		Expertise:       m.Expertise,
		YearsExperience: m.YearsExperience,
		HourlyRate:      m.HourlyRate,
		Location:        m.Location,
		Phone:           m.Phone,
		Website:         m.Website,
		LinkedIn:        m.LinkedIn,
		CreatedAt:       unixToTime(m.CreatedAt),
		UpdatedAt:       unixToTime(m.UpdatedAt),
	}
}

// UpsertClient replaces the single client profile for the owning account.
// created_at is written only on first insert; updated_at on every write.
func (r *MongoProfileRepository) UpsertClient(ctx context.Context, p *domain.ClientProfile) (*domain.ClientProfile, error) {
	now := time.Now().UTC().Unix()
	update := bson.M{
		"$set": bson.M{
			"company_name": p.CompanyName,
			"industry":     p.Industry,
			"description":  p.Description,
			"website":      p.Website,
			"company_size": p.CompanySize,
			"location":     p.Location,
			"phone":        p.Phone,
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var m mongoClientProfile
	if err := r.clients.FindOneAndUpdate(ctx, bson.M{"account_id": p.AccountID}, update, opts).Decode(&m); err != nil {
		return nil, fmt.Errorf("upsert client profile: %w", err)
	}
	return m.toDomain(), nil
}

func (r *MongoProfileRepository) FindClientByAccount(ctx context.Context, accountID string) (*domain.ClientProfile, error) {
	var m mongoClientProfile
	if err := r.clients.FindOne(ctx, bson.M{"account_id": accountID}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find client profile: %w", err)
	}
	return m.toDomain(), nil
}

func (r *MongoProfileRepository) FindClientsByAccounts(ctx context.Context, accountIDs []string) (map[string]*domain.ClientProfile, error) {
	cur, err := r.clients.Find(ctx, bson.M{"account_id": bson.M{"$in": accountIDs}})
	if err != nil {
		return nil, fmt.Errorf("find client profiles: %w", err)
	}
	defer cur.Close(ctx)

	out := make(map[string]*domain.ClientProfile)
	for cur.Next(ctx) {
		var m mongoClientProfile
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode client profile: %w", err)
		}
		out[m.AccountID] = m.toDomain()
	}
	return out, cur.Err()
}

// UpsertExpert replaces the single expert profile for the owning account.
func (r *MongoProfileRepository) UpsertExpert(ctx context.Context, p *domain.ExpertProfile) (*domain.ExpertProfile, error) {
	now := time.Now().UTC().Unix()
	update := bson.M{
		"$set": bson.M{
			"first_name":       p.FirstName,
			"last_name":        p.LastName,
			"bio":              p.Bio,
			"expertise":        p.Expertise,
			"years_experience": p.YearsExperience,
			"hourly_rate":      p.HourlyRate,
			"location":         p.Location,
			"phone":            p.Phone,
			"website":          p.Website,
			"linkedin":         p.LinkedIn,
			"updated_at":       now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var m mongoExpertProfile
	if err := r.experts.FindOneAndUpdate(ctx, bson.M{"account_id": p.AccountID}, update, opts).Decode(&m); err != nil {
		return nil, fmt.Errorf("upsert expert profile: %w", err)
	}
	return m.toDomain(), nil
}

func (r *MongoProfileRepository) FindExpertByAccount(ctx context.Context, accountID string) (*domain.ExpertProfile, error) {
	var m mongoExpertProfile
	if err := r.experts.FindOne(ctx, bson.M{"account_id": accountID}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find expert profile: %w", err)
	}
	return m.toDomain(), nil
}

func (r *MongoProfileRepository) FindExpertsByAccounts(ctx context.Context, accountIDs []string) (map[string]*domain.ExpertProfile, error) {
	cur, err := r.experts.Find(ctx, bson.M{"account_id": bson.M{"$in": accountIDs}})
	if err != nil {
		return nil, fmt.Errorf("find expert profiles: %w", err)
	}
	defer cur.Close(ctx)

	out := make(map[string]*domain.ExpertProfile)
	for cur.Next(ctx) {
		var m mongoExpertProfile
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode expert profile: %w", err)
		}
		out[m.AccountID] = m.toDomain()
	}
	return out, cur.Err()
}
