package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserSummary is the reduced projection used by the list and search
// endpoints.
type UserSummary struct {
	ID      primitive.ObjectID `bson:"_id" json:"_id"`
	Name    string             `bson:"name" json:"name"`
	Email   string             `bson:"email,omitempty" json:"email,omitempty"`
	Profile Profile            `bson:"profile" json:"profile"`
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByResetToken(ctx context.Context, token string, now time.Time) (*User, error)
	ListUsers(ctx context.Context, skip, limit int64) ([]*UserSummary, error)
	SearchUsersByName(ctx context.Context, name string) ([]*UserSummary, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, update bson.M) (*User, error)
	AddPhone(ctx context.Context, id primitive.ObjectID, phone Phone) error
	RemovePhone(ctx context.Context, id, phoneID primitive.ObjectID) error
	NearbyUsers(ctx context.Context, q NearbyQuery) ([]*NearbyUser, error)
}

func (mdb *MongodbRepo) CreateUser(ctx context.Context, user *User) (*User, error) {
	col, err := mdb.GetCollection(UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	user.BeforeCreate()

	if _, err := col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error inserting user: %v", err)
	}

	return user, nil
}

func (mdb *MongodbRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	col, err := mdb.GetCollection(UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var user User
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding user by id: %v", err)
	}

	return &user, nil
}

func (mdb *MongodbRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	col, err := mdb.GetCollection(UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var user User
	filter := bson.M{"email": NormalizeEmail(email)}
	if err := col.FindOne(ctx, filter).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding user by email: %v", err)
	}

	return &user, nil
}

// GetUserByResetToken matches a user whose reset token equals the supplied
// value and whose expiry is strictly in the future. Expired tokens behave
// exactly like unknown ones.
func (mdb *MongodbRepo) GetUserByResetToken(ctx context.Context, token string, now time.Time) (*User, error) {
	col, err := mdb.GetCollection(UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{
		"resetPasswordToken":   token,
		"resetPasswordExpires": bson.M{"$gt": now},
	}

	var user User
	if err := col.FindOne(ctx, filter).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidResetToken
		}
		return nil, fmt.Errorf("error finding user by reset token: %v", err)
	}

	return &user, nil
}

func (mdb *MongodbRepo) ListUsers(ctx context.Context, skip, limit int64) ([]*UserSummary, error) {
	col, err := mdb.GetCollection(UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().
		SetProjection(bson.M{"name": 1, "email": 1, "profile": 1}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %v", err)
	}
	defer cursor.Close(ctx)

	return decodeSummaries(ctx, cursor)
}

func (mdb *MongodbRepo) SearchUsersByName(ctx context.Context, name string) ([]*UserSummary, error) {
	col, err := mdb.GetCollection(UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"name": primitive.Regex{Pattern: name, Options: "i"}}
	opts := options.Find().SetProjection(bson.M{"name": 1, "profile": 1})

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error searching users: %v", err)
	}
	defer cursor.Close(ctx)

	return decodeSummaries(ctx, cursor)
}

func decodeSummaries(ctx context.Context, cursor *mongo.Cursor) ([]*UserSummary, error) {
	users := []*UserSummary{}
	for cursor.Next(ctx) {
		var u UserSummary
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("error decoding user: %v", err)
		}
		users = append(users, &u)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return users, nil
}

// UpdateUser applies a composed update document ($set/$unset) and returns
// the document as it stands after the update.
func (mdb *MongodbRepo) UpdateUser(ctx context.Context, id primitive.ObjectID, update bson.M) (*User, error) {
	col, err := mdb.GetCollection(UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	setFields, ok := update["$set"].(bson.M)
	if !ok {
		setFields = bson.M{}
		update["$set"] = setFields
	}
	setFields["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated User
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error updating user: %v", err)
	}

	return &updated, nil
}

func (mdb *MongodbRepo) AddPhone(ctx context.Context, id primitive.ObjectID, phone Phone) error {
	col, err := mdb.GetCollection(UsersColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	if phone.ID.IsZero() {
		phone.ID = primitive.NewObjectID()
	}

	update := bson.M{
		"$addToSet": bson.M{"phone": phone},
		"$set":      bson.M{"updated_at": time.Now()},
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("error adding phone: %v", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (mdb *MongodbRepo) RemovePhone(ctx context.Context, id, phoneID primitive.ObjectID) error {
	col, err := mdb.GetCollection(UsersColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	update := bson.M{
		"$pull": bson.M{"phone": bson.M{"_id": phoneID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("error removing phone: %v", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// NearbyUsers runs the proximity search restricted to Member-role accounts.
func (mdb *MongodbRepo) NearbyUsers(ctx context.Context, q NearbyQuery) ([]*NearbyUser, error) {
	col, err := mdb.GetCollection(UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	pipeline := BuildGeoNearPipeline(q,
		bson.M{"role": RoleMember},
		bson.D{
			{Key: "name", Value: 1},
			{Key: "profile", Value: 1},
			{Key: "phone", Value: 1},
			{Key: "dist", Value: bson.D{{Key: "calculated", Value: 1}}},
		},
	)

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error running nearby user query: %v", err)
	}
	defer cursor.Close(ctx)

	users := []*NearbyUser{}
	for cursor.Next(ctx) {
		var u NearbyUser
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("error decoding nearby user: %v", err)
		}
		users = append(users, &u)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return users, nil
}
