package v1

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"go.uber.org/fx"

	"xuanxin.dev/backend-next/internal/constant"
	"xuanxin.dev/backend-next/internal/model/types"
	"xuanxin.dev/backend-next/internal/pkg/apperr"
	"xuanxin.dev/backend-next/internal/pkg/cachectrl"
	"xuanxin.dev/backend-next/internal/server/svr"
	"xuanxin.dev/backend-next/internal/service"
	"xuanxin.dev/backend-next/internal/util/rekuest"
)

type Bazi struct {
	fx.In

	ChartService   *service.Chart
	ElementService *service.Element
}

func RegisterBazi(v1 *svr.V1, c Bazi) {
	v1.Post("/bazi/analyze", c.Analyze)
	v1.Post("/bazi/paipan", c.Paipan)
	v1.Get("/bazi/elements/:element", c.GetElement)
	v1.Get("/bazi/annual", c.GetAnnual)
}

func (c *Bazi) Analyze(ctx *fiber.Ctx) error {
	var body types.AnalyzeRequest
	if err := rekuest.ValidBody(ctx, &body); err != nil {
		return err
	}

	req, err := body.ChartRequest(time.Now().Year())
	if err != nil {
		return apperr.ErrInvalidReq.Msg("invalid birth: %s", err)
	}

	result, outcome := c.ChartService.Analyze(ctx.UserContext(), req)

	ctx.Set(constant.CacheStatusHeader, lo.Ternary(outcome.Cached, "hit", "miss"))
	ctx.Set(constant.BirthKeyHeader, outcome.BirthKey)
	if outcome.RecordID != "" {
		ctx.Set(constant.RecordIDHeader, outcome.RecordID)
	}
	cachectrl.OptOut(ctx)
	return ctx.JSON(result)
}

func (c *Bazi) Paipan(ctx *fiber.Ctx) error {
	var body types.BirthFragment
	if err := rekuest.ValidBody(ctx, &body); err != nil {
		return err
	}

	b, err := body.Birth()
	if err != nil {
		return apperr.ErrInvalidReq.Msg("invalid birth: %s", err)
	}

	cachectrl.OptOut(ctx)
	return ctx.JSON(c.ChartService.Paipan(b))
}

func (c *Bazi) GetElement(ctx *fiber.Ctx) error {
	name, err := url.PathUnescape(ctx.Params("element"))
	if err != nil {
		return apperr.ErrInvalidReq.Msg("malformed element")
	}

	advisory, err := c.ElementService.Advisory(name)
	if err != nil {
		return err
	}

	cachectrl.OptIn(ctx, time.Now())
	return ctx.JSON(advisory)
}

func (c *Bazi) GetAnnual(ctx *fiber.Ctx) error {
	var query types.AnnualQuery
	if err := rekuest.ValidQuery(ctx, &query); err != nil {
		return err
	}

	b, err := query.Birth()
	if err != nil {
		return apperr.ErrInvalidReq.Msg("invalid birth: %s", err)
	}
	target := lo.Ternary(query.TargetYear > 0, query.TargetYear, time.Now().Year())

	cachectrl.OptIn(ctx, time.Now())
	return ctx.JSON(types.AnnualResponse{
		TargetYear: target,
		Years:      c.ChartService.Annual(b, target),
	})
}
