package storage

import (
	"context"
	"errors"
	"time"

	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	directoryDomain "github.com/filterbotio/autofilter-bot/internal/modules/directory/domain"
	filterDomain "github.com/filterbotio/autofilter-bot/internal/modules/filter/domain"
	sharedErrors "github.com/filterbotio/autofilter-bot/internal/shared/errors"
)

const (
	filtersCollection = "filters"
	usersCollection   = "users"
	groupsCollection  = "groups"
	statsCollection   = "stats"

	// statsDocID is the single document holding all counters.
	statsDocID = "global"
)

// MongoBackend persists every record set in its own collection and leans on
// server-side atomic updates, so no process-local locking is needed.
type MongoBackend struct {
	client    *mongo.Client
	startedAt time.Time

	filters *mongo.Collection
	users   *mongo.Collection
	groups  *mongo.Collection
	stats   *mongo.Collection
}

// NewMongoBackend connects and pings before returning, so a bad URL fails
// fast instead of surfacing on the first write.
func NewMongoBackend(ctx context.Context, url, database string) (*MongoBackend, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(url))
	if err != nil {
		return nil, oops.With("context", "failed to connect to mongodb").Wrap(err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, oops.With("context", "failed to ping mongodb").Wrap(err)
	}

	db := client.Database(database)
	return &MongoBackend{
		client:    client,
		startedAt: time.Now(),
		filters:   db.Collection(filtersCollection),
		users:     db.Collection(usersCollection),
		groups:    db.Collection(groupsCollection),
		stats:     db.Collection(statsCollection),
	}, nil
}

func (b *MongoBackend) AddFilterPayload(ctx context.Context, keyword string, payload filterDomain.Payload) error {
	_, err := b.filters.UpdateByID(ctx, keyword,
		bson.M{"$push": bson.M{"payloads": payload}},
		options.UpdateOne().SetUpsert(true))
	if err != nil {
		return oops.With("keyword", keyword, "context", "failed to store filter payload").Wrap(err)
	}
	return nil
}

func (b *MongoBackend) Filters(ctx context.Context) (map[string][]filterDomain.Payload, error) {
	cur, err := b.filters.Find(ctx, bson.M{})
	if err != nil {
		return nil, oops.With("context", "failed to query filters").Wrap(err)
	}
	var entries []filterDomain.Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, oops.With("context", "failed to decode filters").Wrap(err)
	}

	out := make(map[string][]filterDomain.Payload, len(entries))
	for _, entry := range entries {
		out[entry.Keyword] = entry.Payloads
	}
	return out, nil
}

func (b *MongoBackend) DeleteFilter(ctx context.Context, keyword string) (bool, error) {
	res, err := b.filters.DeleteOne(ctx, bson.M{"_id": keyword})
	if err != nil {
		return false, oops.With("keyword", keyword, "context", "failed to delete filter").Wrap(err)
	}
	return res.DeletedCount > 0, nil
}

func (b *MongoBackend) UpsertUser(ctx context.Context, id int64, profile directoryDomain.UserProfile) error {
	now := time.Now()
	_, err := b.users.UpdateByID(ctx, id,
		bson.M{
			"$set": bson.M{
				"first_name": profile.FirstName,
				"username":   profile.Username,
				"last_seen":  now,
			},
			"$setOnInsert": bson.M{
				"join_date":    now,
				"search_count": int64(0),
			},
		},
		options.UpdateOne().SetUpsert(true))
	if err != nil {
		return oops.With("userID", id, "context", "failed to upsert user").Wrap(err)
	}
	return nil
}

func (b *MongoBackend) User(ctx context.Context, id int64) (*directoryDomain.UserRecord, error) {
	var user directoryDomain.UserRecord
	err := b.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, sharedErrors.ErrUserNotFound
	}
	if err != nil {
		return nil, oops.With("userID", id, "context", "failed to load user").Wrap(err)
	}
	return &user, nil
}

func (b *MongoBackend) UserIDs(ctx context.Context) ([]int64, error) {
	return b.collectIDs(ctx, b.users, "failed to list users")
}

func (b *MongoBackend) RemoveUser(ctx context.Context, id int64) error {
	if _, err := b.users.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return oops.With("userID", id, "context", "failed to remove user").Wrap(err)
	}
	return nil
}

func (b *MongoBackend) IncrementUserSearches(ctx context.Context, id int64) error {
	// No upsert: searches by users the directory never saw are not recorded.
	_, err := b.users.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"search_count": int64(1)}})
	if err != nil {
		return oops.With("userID", id, "context", "failed to count user search").Wrap(err)
	}
	return nil
}

func (b *MongoBackend) UpsertGroup(ctx context.Context, id int64, profile directoryDomain.GroupProfile) error {
	now := time.Now()
	_, err := b.groups.UpdateByID(ctx, id,
		bson.M{
			"$set": bson.M{
				"title":        profile.Title,
				"username":     profile.Username,
				"member_count": profile.MemberCount,
				"last_active":  now,
			},
			"$setOnInsert": bson.M{"join_date": now},
		},
		options.UpdateOne().SetUpsert(true))
	if err != nil {
		return oops.With("groupID", id, "context", "failed to upsert group").Wrap(err)
	}
	return nil
}

func (b *MongoBackend) GroupIDs(ctx context.Context) ([]int64, error) {
	return b.collectIDs(ctx, b.groups, "failed to list groups")
}

func (b *MongoBackend) IncrementCounter(ctx context.Context, name string) error {
	_, err := b.stats.UpdateByID(ctx, statsDocID,
		bson.M{"$inc": bson.M{name: int64(1)}},
		options.UpdateOne().SetUpsert(true))
	if err != nil {
		return oops.With("counter", name, "context", "failed to increment counter").Wrap(err)
	}
	return nil
}

func (b *MongoBackend) Counters(ctx context.Context) (map[string]int64, error) {
	var doc bson.M
	err := b.stats.FindOne(ctx, bson.M{"_id": statsDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return map[string]int64{}, nil
	}
	if err != nil {
		return nil, oops.With("context", "failed to load counters").Wrap(err)
	}

	out := make(map[string]int64, len(doc))
	for name, value := range doc {
		// The _id is a string and falls through the switch.
		switch v := value.(type) {
		case int32:
			out[name] = int64(v)
		case int64:
			out[name] = v
		}
	}
	return out, nil
}

func (b *MongoBackend) StartedAt() time.Time { return b.startedAt }

func (b *MongoBackend) Name() string { return "mongo" }

func (b *MongoBackend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}

func (b *MongoBackend) collectIDs(ctx context.Context, coll *mongo.Collection, errContext string) ([]int64, error) {
	cur, err := coll.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"_id": 1}).SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, oops.With("context", errContext).Wrap(err)
	}
	var docs []struct {
		ID int64 `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, oops.With("context", errContext).Wrap(err)
	}

	ids := make([]int64, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}
