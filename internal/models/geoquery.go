package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// NearbyPageSize is the fixed page size for proximity queries.
const NearbyPageSize = 10

// distanceField is where $geoNear writes the computed distance. The 0.001
// multiplier scales raw meters to kilometers.
const (
	distanceField      = "dist.calculated"
	distanceMultiplier = 0.001
)

// NearbyQuery describes a distance-bounded, paginated spherical search.
// Distances are kilometers. ExcludeIDs is reserved for already-seen
// pagination; callers currently pass nil, which makes the filter a no-op.
type NearbyQuery struct {
	Near        GeoPoint
	MinDistance float64
	MaxDistance float64
	Skip        int64
	ExcludeIDs  []primitive.ObjectID
}

// Distance holds the computed distance attached to every proximity result.
type Distance struct {
	Calculated float64 `bson:"calculated" json:"calculated"`
}

// NearbyUser is the projected shape of a user proximity result.
type NearbyUser struct {
	ID      primitive.ObjectID `bson:"_id" json:"_id"`
	Name    string             `bson:"name" json:"name"`
	Profile Profile            `bson:"profile" json:"profile"`
	Phone   []Phone            `bson:"phone" json:"phone"`
	Dist    Distance           `bson:"dist" json:"dist"`
}

// NearbyPost is the projected shape of a listing proximity result.
type NearbyPost struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	UserName    string             `bson:"user_name" json:"user_name"`
	UserEmail   string             `bson:"user_email" json:"user_email"`
	UserPhone   []Phone            `bson:"user_phone" json:"user_phone"`
	UserPicture Picture            `bson:"user_picture" json:"user_picture"`
	UserAddress string             `bson:"user_address" json:"user_address,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	MainPicture Picture            `bson:"main_picture" json:"main_picture"`
	Qty         int                `bson:"qty" json:"qty"`
	Price       float64            `bson:"price" json:"price"`
	Dist        Distance           `bson:"dist" json:"dist"`
}

// BuildGeoNearPipeline assembles the aggregation shared by user and post
// proximity searches: spherical $geoNear sorted ascending by distance, a
// projection, then skip and the fixed page limit. The 2dsphere index works in
// meters, so the kilometer bounds are scaled up on the way in and the
// computed distance is scaled back down via distanceMultiplier.
func BuildGeoNearPipeline(q NearbyQuery, filter bson.M, projection bson.D) mongo.Pipeline {
	if filter == nil {
		filter = bson.M{}
	}
	filter["_id"] = bson.M{"$nin": excludeList(q.ExcludeIDs)}

	return mongo.Pipeline{
		{{Key: "$geoNear", Value: bson.M{
			"near":               q.Near,
			"distanceField":      distanceField,
			"minDistance":        q.MinDistance * 1000,
			"maxDistance":        q.MaxDistance * 1000,
			"distanceMultiplier": distanceMultiplier,
			"query":              filter,
			"includeLocs":        "dist.location",
			"spherical":          true,
		}}},
		{{Key: "$project", Value: projection}},
		{{Key: "$skip", Value: q.Skip}},
		{{Key: "$limit", Value: NearbyPageSize}},
	}
}

func excludeList(ids []primitive.ObjectID) []primitive.ObjectID {
	if ids == nil {
		return []primitive.ObjectID{}
	}
	return ids
}
