package dao

import (
	"context"
	"time"

	"github.com/haierkeys/keepsake-service/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoLetter struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Title     string        `bson:"title"`
	Content   string        `bson:"content"`
	Signature string        `bson:"signature"`
	Date      time.Time     `bson:"date"`
}

func (m *mongoLetter) toDomain() *domain.Letter {
	return &domain.Letter{
		ID:        m.ID.Hex(),
		Title:     m.Title,
		Content:   m.Content,
		Signature: m.Signature,
		Date:      m.Date,
	}
}

// mongoLetterRepository 实现 domain.LetterRepository 接口
type mongoLetterRepository struct {
	conn *MongoConnector
}

func NewMongoLetterRepository(conn *MongoConnector) domain.LetterRepository {
	return &mongoLetterRepository{conn: conn}
}

var _ domain.LetterRepository = (*mongoLetterRepository)(nil)

func (r *mongoLetterRepository) Create(ctx context.Context, letter *domain.Letter) (*domain.Letter, error) {
	coll, err := r.conn.collection(collectionLetters)
	if err != nil {
		return nil, err
	}
	doc := &mongoLetter{
		ID:        bson.NewObjectID(),
		Title:     letter.Title,
		Content:   letter.Content,
		Signature: letter.Signature,
		Date:      letter.Date,
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return nil, mongoErr(err)
	}
	return doc.toDomain(), nil
}

func (r *mongoLetterRepository) List(ctx context.Context) ([]*domain.Letter, error) {
	coll, err := r.conn.collection(collectionLetters)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, mongoErr(err)
	}
	var docs []*mongoLetter
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mongoErr(err)
	}
	list := make([]*domain.Letter, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.toDomain())
	}
	return list, nil
}

func (r *mongoLetterRepository) GetByID(ctx context.Context, id string) (*domain.Letter, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoLetterRepository) GetByTitle(ctx context.Context, title string) (*domain.Letter, error) {
	return r.findOne(ctx, bson.M{"title": title}, options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *mongoLetterRepository) findOne(ctx context.Context, filter bson.M, opts ...options.Lister[options.FindOneOptions]) (*domain.Letter, error) {
	coll, err := r.conn.collection(collectionLetters)
	if err != nil {
		return nil, err
	}
	doc := new(mongoLetter)
	if err := coll.FindOne(ctx, filter, opts...).Decode(doc); err != nil {
		return nil, mongoErr(err)
	}
	return doc.toDomain(), nil
}

func (r *mongoLetterRepository) Update(ctx context.Context, letter *domain.Letter) (*domain.Letter, error) {
	oid, err := parseObjectID(letter.ID)
	if err != nil {
		return nil, err
	}
	coll, err := r.conn.collection(collectionLetters)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"title":     letter.Title,
		"content":   letter.Content,
		"signature": letter.Signature,
		"date":      letter.Date,
	}}
	doc := new(mongoLetter)
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(doc)
	if err != nil {
		return nil, mongoErr(err)
	}
	return doc.toDomain(), nil
}

func (r *mongoLetterRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	coll, err := r.conn.collection(collectionLetters)
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
