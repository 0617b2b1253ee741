package dao

import (
	"context"
	"time"

	"github.com/haierkeys/keepsake-service/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoPhoto struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	Date        time.Time     `bson:"date"`
	ImageURL    string        `bson:"imageUrl"`
	AssetID     string        `bson:"assetId,omitempty"`
}

func (m *mongoPhoto) toDomain() *domain.Photo {
	return &domain.Photo{
		ID:          m.ID.Hex(),
		Title:       m.Title,
		Description: m.Description,
		Date:        m.Date,
		ImageURL:    m.ImageURL,
		AssetID:     m.AssetID,
	}
}

// parseObjectID 格式非法的 id 视为不存在
func parseObjectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, domain.ErrNotFound
	}
	return oid, nil
}

// mongoPhotoRepository 实现 domain.PhotoRepository 接口
type mongoPhotoRepository struct {
	conn *MongoConnector
}

func NewMongoPhotoRepository(conn *MongoConnector) domain.PhotoRepository {
	return &mongoPhotoRepository{conn: conn}
}

var _ domain.PhotoRepository = (*mongoPhotoRepository)(nil)

func (r *mongoPhotoRepository) Create(ctx context.Context, photo *domain.Photo) (*domain.Photo, error) {
	coll, err := r.conn.collection(collectionPhotos)
	if err != nil {
		return nil, err
	}
	doc := &mongoPhoto{
		ID:          bson.NewObjectID(),
		Title:       photo.Title,
		Description: photo.Description,
		Date:        photo.Date,
		ImageURL:    photo.ImageURL,
		AssetID:     photo.AssetID,
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return nil, mongoErr(err)
	}
	return doc.toDomain(), nil
}

func (r *mongoPhotoRepository) List(ctx context.Context) ([]*domain.Photo, error) {
	coll, err := r.conn.collection(collectionPhotos)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, mongoErr(err)
	}
	var docs []*mongoPhoto
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mongoErr(err)
	}
	list := make([]*domain.Photo, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.toDomain())
	}
	return list, nil
}

func (r *mongoPhotoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	coll, err := r.conn.collection(collectionPhotos)
	if err != nil {
		return nil, err
	}
	doc := new(mongoPhoto)
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(doc); err != nil {
		return nil, mongoErr(err)
	}
	return doc.toDomain(), nil
}

func (r *mongoPhotoRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	coll, err := r.conn.collection(collectionPhotos)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mongoErr(err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
