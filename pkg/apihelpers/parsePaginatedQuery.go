package apihelpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type PaginatedQuery struct {
	Page   int64
	Limit  int64
	Sort   bson.M
	Search string
	States []string
}

// ParsePaginatedQueryFromCtx reads the common application listing query
// parameters. Sort accepts "<field>" or "-<field>" for descending order.
func ParsePaginatedQueryFromCtx(c *gin.Context) (*PaginatedQuery, error) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil {
		return nil, err
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil {
		return nil, err
	}

	sort := bson.M{}
	if sortStr := c.DefaultQuery("sort", ""); sortStr != "" {
		order := 1
		field := sortStr
		if sortStr[0] == '-' {
			order = -1
			field = sortStr[1:]
		}
		if field != "" {
			sort[field] = order
		}
	}

	var states []string
	if stateStr := c.DefaultQuery("states", ""); stateStr != "" {
		states = c.QueryArray("states")
	}

	return &PaginatedQuery{
		Page:   page,
		Limit:  limit,
		Sort:   sort,
		Search: c.DefaultQuery("search", ""),
		States: states,
	}, nil
}
