package service

import (
	"context"

	"go-linktrack/internal/biz"
	"go-linktrack/internal/domain"

	"github.com/go-kratos/kratos/v2/errors"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ClickRequest is a click notification from the page: the attributes of
// the nearest anchor enclosing the clicked element.
type ClickRequest struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Target string `json:"target"`
}

// Validate bounds attribute sizes. An empty href is valid and classifies
// as internal.
func (r ClickRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Href, validation.Length(0, 4096)),
		validation.Field(&r.Rel, validation.Length(0, 256)),
		validation.Field(&r.Target, validation.Length(0, 256)),
	)
}

// ClickReply tells the page what to do with the click. When PreventDefault
// is set the page must cancel the click and navigate to NavigateTo after
// DelayMs milliseconds.
type ClickReply struct {
	Tracked        bool                `json:"tracked"`
	Category       string              `json:"category"`
	PreventDefault bool                `json:"prevent_default"`
	NavigateTo     string              `json:"navigate_to,omitempty"`
	DelayMs        int64               `json:"delay_ms,omitempty"`
	Record         *domain.EventRecord `json:"record,omitempty"`
}

// StatsReply carries per-action totals of stored records.
type StatsReply struct {
	Counts map[string]int64 `json:"counts"`
}

type ClickService struct {
	clicks *biz.Interceptor
	stats  *biz.StatsUsecase
}

func NewClickService(clicks *biz.Interceptor, stats *biz.StatsUsecase) *ClickService {
	return &ClickService{clicks: clicks, stats: stats}
}

func (s *ClickService) TrackClick(ctx context.Context, req *ClickRequest) (*ClickReply, error) {
	if err := req.Validate(); err != nil {
		return nil, errors.BadRequest("INVALID_CLICK", err.Error())
	}

	decision := s.clicks.HandleClick(ctx, domain.LinkAttributes{
		Href:   req.Href,
		Rel:    req.Rel,
		Target: req.Target,
	})

	return &ClickReply{
		Tracked:        decision.Tracked(),
		Category:       decision.Category.String(),
		PreventDefault: decision.PreventDefault,
		NavigateTo:     decision.Destination,
		DelayMs:        decision.Delay.Milliseconds(),
		Record:         decision.Record,
	}, nil
}

func (s *ClickService) Stats(ctx context.Context) (*StatsReply, error) {
	counts, err := s.stats.Counts(ctx)
	if err != nil {
		return nil, errors.InternalServer("STATS_UNAVAILABLE", err.Error())
	}
	return &StatsReply{Counts: counts}, nil
}
