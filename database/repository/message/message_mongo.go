package messageRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ehealth/models"
	"ehealth/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoMessageRepo struct {
	coll *mongo.Collection
}

// NewMongoMessageRepo returns a MessageRepository backed by MongoDB.
func NewMongoMessageRepo(db *mongo.Database) MessageRepository {
	repo := &mongoMessageRepo{coll: db.Collection("messages")}
	if err := repo.ensureIndexes(context.Background()); err != nil {
		utils.GetLogger().Warn("failed to create message indexes", zap.Error(err))
	}
	return repo
}

func (r *mongoMessageRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "sender", Value: 1}, {Key: "recipient", Value: 1}, {Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func between(a, b string) bson.M {
	return bson.M{"$or": []bson.M{
		{"sender": a, "recipient": b},
		{"sender": b, "recipient": a},
	}}
}

func (r *mongoMessageRepo) Create(ctx context.Context, msg *models.Message) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	msg.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (r *mongoMessageRepo) Conversation(ctx context.Context, a, b string) ([]models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, between(a, b), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversation: %w", err)
	}
	defer cursor.Close(ctx)

	msgs := []models.Message{}
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode conversation: %w", err)
	}
	return msgs, nil
}

func (r *mongoMessageRepo) distinct(ctx context.Context, field string, filter bson.M) ([]string, error) {
	values, err := r.coll.Distinct(ctx, field, filter)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// PartnerIDs merges recipients of sent messages with senders of received ones, without duplicates.
func (r *mongoMessageRepo) PartnerIDs(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	sent, err := r.distinct(ctx, "recipient", bson.M{"sender": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipients: %w", err)
	}
	received, err := r.distinct(ctx, "sender", bson.M{"recipient": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch senders: %w", err)
	}

	seen := make(map[string]bool, len(sent)+len(received))
	partners := []string{}
	for _, id := range append(sent, received...) {
		if !seen[id] {
			seen[id] = true
			partners = append(partners, id)
		}
	}
	return partners, nil
}

func (r *mongoMessageRepo) LastBetween(ctx context.Context, a, b string) (*models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var msg models.Message
	if err := r.coll.FindOne(ctx, between(a, b), opts).Decode(&msg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch last message: %w", err)
	}
	return &msg, nil
}

func (r *mongoMessageRepo) CountUnread(ctx context.Context, senderID, recipientID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"sender": senderID, "recipient": recipientID, "read": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return n, nil
}

func (r *mongoMessageRepo) MarkRead(ctx context.Context, senderID, recipientID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"sender": senderID, "recipient": recipientID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}
	return res.ModifiedCount, nil
}
