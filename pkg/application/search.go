package application

import (
	"strings"

	"github.com/icgc-argo/dac-api-sub000/pkg/application/lifecycle"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/types"
	appdb "github.com/icgc-argo/dac-api-sub000/pkg/db/application"
	"github.com/icgc-argo/dac-api-sub000/pkg/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var applicationStates = []string{
	types.APPLICATION_STATE_DRAFT,
	types.APPLICATION_STATE_SIGN_AND_SUBMIT,
	types.APPLICATION_STATE_REVIEW,
	types.APPLICATION_STATE_REVISIONS_REQUESTED,
	types.APPLICATION_STATE_APPROVED,
	types.APPLICATION_STATE_REJECTED,
	types.APPLICATION_STATE_PAUSED,
	types.APPLICATION_STATE_EXPIRED,
	types.APPLICATION_STATE_CLOSED,
}

// SearchQuery narrows the application listing. Search terms match against
// the precomputed search values, states filter on the lifecycle state.
type SearchQuery struct {
	Search string
	States []string
	Sort   bson.M
	Page   int64
	Limit  int64
}

// SearchApplications lists applications visible to the caller, one page at
// a time. Submitters only ever see their own applications.
func SearchApplications(principal types.Principal, query SearchQuery) ([]types.Application, appdb.PaginationInfos, error) {
	filter := bson.M{}

	switch principal.Role() {
	case types.ROLE_ADMIN, types.ROLE_SYSTEM:
		// no owner restriction
	case types.ROLE_SUBMITTER:
		filter["submitterId"] = principal.AuthorID()
	default:
		return nil, appdb.PaginationInfos{}, &types.ForbiddenError{Role: principal.Role(), Action: "list applications"}
	}

	if len(query.States) > 0 {
		states := make([]string, 0, len(query.States))
		for _, state := range query.States {
			if utils.ContainsString(applicationStates, state) {
				states = append(states, state)
			}
		}
		if len(states) > 0 {
			filter["state"] = bson.M{"$in": states}
		}
	}

	if search := strings.TrimSpace(query.Search); search != "" {
		tokens := strings.Fields(strings.ToLower(search))
		conditions := make([]bson.M, 0, len(tokens))
		for _, token := range tokens {
			conditions = append(conditions, bson.M{
				"searchValues": bson.M{"$regex": primitive.Regex{Pattern: "^" + escapeRegex(token)}},
			})
		}
		filter["$and"] = conditions
	}

	apps, paginationInfos, err := applicationDBService.GetApplications(filter, query.Sort, query.Page, query.Limit)
	if err != nil {
		return nil, paginationInfos, err
	}

	reviewer := isReviewer(principal)
	views := make([]types.Application, 0, len(apps))
	for i := range apps {
		views = append(views, lifecycle.PrepareForView(&apps[i], reviewer))
	}
	return views, paginationInfos, nil
}

var regexSpecials = "\\.+*?()|[]{}^$"

func escapeRegex(value string) string {
	var b strings.Builder
	for _, r := range value {
		if strings.ContainsRune(regexSpecials, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
