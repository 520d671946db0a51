package application

type PaginationInfos struct {
	TotalCount  int64 `bson:"totalCount" json:"totalCount"`
	CurrentPage int64 `bson:"currentPage" json:"currentPage"`
	TotalPages  int64 `bson:"totalPages" json:"totalPages"`
	PageSize    int64 `bson:"pageSize" json:"pageSize"`
}

func getTotalPages(totalCount int64, pageSize int64) int64 {
	if pageSize < 1 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}

func prepPaginationInfos(totalCount int64, page int64, limit int64) PaginationInfos {
	if limit < 1 {
		limit = 10
	}
	totalPages := getTotalPages(totalCount, limit)
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	return PaginationInfos{
		TotalCount:  totalCount,
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    limit,
	}
}
