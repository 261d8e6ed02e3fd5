package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecmis-core/internal/infrastructure/database/mongodb"
	"ecmis-core/internal/modules/visites/dto"
)

// RecapStore index dénormalisé des visites : prescripteurs et formulaires
// enregistrés par visite. Alimenté en best-effort, relu par le reporting.
type RecapStore interface {
	Init(ctx context.Context, recap dto.RecapVisite) error
	AppendPrescripteur(ctx context.Context, visiteID, prescripteurID string) error
	AppendFormulaire(ctx context.Context, visiteID, formulaire string) error
	GetByVisite(ctx context.Context, visiteID string) (*dto.RecapVisite, error)
	ListByPatients(ctx context.Context, patientIDs []string) ([]dto.RecapVisite, error)
}

// MongoRecapStore implémentation sur la collection recaps_visites
type MongoRecapStore struct {
	mongo *mongodb.Client
}

func NewMongoRecapStore(client *mongodb.Client) *MongoRecapStore {
	return &MongoRecapStore{mongo: client}
}

var _ RecapStore = (*MongoRecapStore)(nil)

// Init crée le document récap d'une visite (upsert sur visite_id)
func (s *MongoRecapStore) Init(ctx context.Context, recap dto.RecapVisite) error {
	collection := s.mongo.Collection(mongodb.RecapCollection)

	recap.UpdatedAt = time.Now()
	if recap.Prescripteurs == nil {
		recap.Prescripteurs = []string{}
	}
	if recap.Formulaires == nil {
		recap.Formulaires = []string{}
	}

	_, err := collection.UpdateOne(ctx,
		bson.M{"visite_id": recap.VisiteID},
		bson.M{"$setOnInsert": recap},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to init recap: %w", err)
	}
	return nil
}

// AppendPrescripteur ajoute un prescripteur au récap ($addToSet, pas de doublon)
func (s *MongoRecapStore) AppendPrescripteur(ctx context.Context, visiteID, prescripteurID string) error {
	collection := s.mongo.Collection(mongodb.RecapCollection)

	_, err := collection.UpdateOne(ctx,
		bson.M{"visite_id": visiteID},
		bson.M{
			"$addToSet": bson.M{"prescripteurs": prescripteurID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to append prescripteur: %w", err)
	}
	return nil
}

// AppendFormulaire ajoute un nom de formulaire au récap
func (s *MongoRecapStore) AppendFormulaire(ctx context.Context, visiteID, formulaire string) error {
	collection := s.mongo.Collection(mongodb.RecapCollection)

	_, err := collection.UpdateOne(ctx,
		bson.M{"visite_id": visiteID},
		bson.M{
			"$addToSet": bson.M{"formulaires": formulaire},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to append formulaire: %w", err)
	}
	return nil
}

// GetByVisite récupère le récap d'une visite, nil si absent
func (s *MongoRecapStore) GetByVisite(ctx context.Context, visiteID string) (*dto.RecapVisite, error) {
	collection := s.mongo.Collection(mongodb.RecapCollection)

	var recap dto.RecapVisite
	err := collection.FindOne(ctx, bson.M{"visite_id": visiteID}).Decode(&recap)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recap: %w", err)
	}
	return &recap, nil
}

// ListByPatients récupère les récaps d'un ensemble de patients
func (s *MongoRecapStore) ListByPatients(ctx context.Context, patientIDs []string) ([]dto.RecapVisite, error) {
	if len(patientIDs) == 0 {
		return nil, nil
	}

	collection := s.mongo.Collection(mongodb.RecapCollection)

	cursor, err := collection.Find(ctx, bson.M{"patient_id": bson.M{"$in": patientIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to list recaps: %w", err)
	}
	defer cursor.Close(ctx)

	var recaps []dto.RecapVisite
	if err := cursor.All(ctx, &recaps); err != nil {
		return nil, fmt.Errorf("failed to decode recaps: %w", err)
	}
	return recaps, nil
}
