package util

import (
	"github.com/aibootstrap/core-api/biz/application/dto/basic"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func BuildFindOption(p *basic.Page) (opts *options.FindOptionsBuilder) {
	opts = options.Find()
	opts.SetSkip((p.GetPage() - 1) * p.GetSize())
	opts.SetLimit(p.GetSize())
	return
}

func ObjectIDsFromHex(ids ...string) ([]primitive.ObjectID, error) {
	var objectIDs []primitive.ObjectID
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, err
		}
		objectIDs = append(objectIDs, oid)
	}
	return objectIDs, nil
}

func HasMore(total int64, page *basic.Page) bool {
	return total > page.GetPage()*page.GetSize()
}
