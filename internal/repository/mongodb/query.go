package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/dtroode/healthnest-server/internal/model"
)

// toBSON translates a filter into a query document. Array containment needs no
// operator in MongoDB: a scalar compared with an array field matches any element.
func toBSON(f model.Filter) bson.D {
	query := bson.D{}
	for _, c := range f {
		switch c.Op {
		case model.OpElemMatch:
			query = append(query, bson.E{Key: c.Field, Value: bson.D{{Key: "$elemMatch", Value: c.Value}}})
		default:
			query = append(query, bson.E{Key: c.Field, Value: c.Value})
		}
	}
	return query
}

func sortDocument(order model.Sort) bson.D {
	if order.Field == "" {
		return bson.D{{Key: model.FieldMongoID, Value: 1}}
	}
	direction := 1
	if order.Descending {
		direction = -1
	}
	return bson.D{
		{Key: order.Field, Value: direction},
		{Key: model.FieldMongoID, Value: 1},
	}
}
