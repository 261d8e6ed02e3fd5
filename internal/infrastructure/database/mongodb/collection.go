package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecapCollection nom de la collection des récapitulatifs de visite.
// Un document par visite : liste des prescripteurs et des formulaires saisis.
const RecapCollection = "recaps_visites"

type CollectionManager struct {
	client *Client
}

func NewCollectionManager(client *Client) *CollectionManager {
	return &CollectionManager{client: client}
}

// EnsureRecapCollection crée la collection des récaps avec son schéma de validation.
// Le récap est un index secondaire best-effort : le schéma ne garantit pas
// l'intégrité référentielle des ids qu'il contient.
func (cm *CollectionManager) EnsureRecapCollection(ctx context.Context) error {
	exists, err := cm.CollectionExists(ctx, RecapCollection)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	validator := bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"visite_id", "patient_id", "clinique_id", "created_at"},
			"properties": bson.M{
				"visite_id": bson.M{
					"bsonType":    "string",
					"description": "ID de la visite récapitulée",
				},
				"patient_id": bson.M{
					"bsonType":    "string",
					"description": "ID du patient",
				},
				"clinique_id": bson.M{
					"bsonType":    "string",
					"description": "ID de la clinique de la visite",
				},
				"date_visite": bson.M{
					"bsonType":    "date",
					"description": "Date de la visite",
				},
				"prescripteurs": bson.M{
					"bsonType":    "array",
					"description": "IDs des prescripteurs intervenus sur la visite",
				},
				"formulaires": bson.M{
					"bsonType":    "array",
					"description": "Noms des formulaires saisis pour la visite",
				},
				"created_at": bson.M{
					"bsonType":    "date",
					"description": "Date de création",
				},
				"updated_at": bson.M{
					"bsonType":    "date",
					"description": "Date de modification",
				},
			},
		},
	}

	opts := options.CreateCollection().SetValidator(validator)

	if err := cm.client.CreateCollection(ctx, RecapCollection, opts); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", RecapCollection, err)
	}

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "visite_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "patient_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "clinique_id", Value: 1}, {Key: "date_visite", Value: -1}},
		},
	}

	return cm.client.CreateIndexes(ctx, RecapCollection, indexes)
}

func (cm *CollectionManager) CollectionExists(ctx context.Context, name string) (bool, error) {
	collections, err := cm.client.ListCollectionNames(ctx)
	if err != nil {
		return false, err
	}

	for _, coll := range collections {
		if coll == name {
			return true, nil
		}
	}
	return false, nil
}
