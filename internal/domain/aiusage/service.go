package aiusage

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Service provides usage reporting over the stored records
type Service struct {
	repo Repository
}

// NewService creates a new usage service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetUsage returns usage totals for the period grouped by model and provider.
func (s *Service) GetUsage(ctx context.Context, startDate, endDate time.Time) (*UsageResponse, error) {
	summaries, err := s.repo.SummarizeByModel(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return buildUsageResponse(summaries, startDate, endDate), nil
}

func buildUsageResponse(summaries []UsageSummary, startDate, endDate time.Time) *UsageResponse {
	response := &UsageResponse{
		Period: Period{
			StartDate: startDate,
			EndDate:   endDate,
		},
		ByModel:    make([]UsageSummary, 0),
		ByProvider: make([]UsageSummary, 0),
	}

	total := UsageSummary{CostIncurred: decimal.Zero}
	modelMap := make(map[string]*UsageSummary)
	providerMap := make(map[string]*UsageSummary)

	for _, summary := range summaries {
		accumulate(&total, summary)

		if existing, ok := modelMap[summary.Model]; ok {
			accumulate(existing, summary)
		} else {
			modelSummary := summary
			modelSummary.Provider = ""
			modelMap[summary.Model] = &modelSummary
		}

		if existing, ok := providerMap[summary.Provider]; ok {
			accumulate(existing, summary)
		} else {
			providerSummary := summary
			providerSummary.Model = ""
			providerMap[summary.Provider] = &providerSummary
		}
	}

	response.TotalUsage = total
	for _, v := range modelMap {
		response.ByModel = append(response.ByModel, *v)
	}
	for _, v := range providerMap {
		response.ByProvider = append(response.ByProvider, *v)
	}
	sort.Slice(response.ByModel, func(i, j int) bool { return response.ByModel[i].Model < response.ByModel[j].Model })
	sort.Slice(response.ByProvider, func(i, j int) bool { return response.ByProvider[i].Provider < response.ByProvider[j].Provider })
	return response
}

func accumulate(dst *UsageSummary, src UsageSummary) {
	dst.TotalTokens += src.TotalTokens
	dst.RequestCount += src.RequestCount
	dst.CostIncurred = dst.CostIncurred.Add(src.CostIncurred)
}
