package v1

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"xuanxin.dev/backend-next/internal/model/types"
	"xuanxin.dev/backend-next/internal/pkg/cachectrl"
	"xuanxin.dev/backend-next/internal/server/svr"
	"xuanxin.dev/backend-next/internal/service"
	"xuanxin.dev/backend-next/internal/util/rekuest"
)

type Record struct {
	fx.In

	ArchiveService *service.Archive
}

func RegisterRecord(v1 *svr.V1, c Record) {
	v1.Get("/bazi/records", c.GetRecords)
	v1.Get("/bazi/records/:id", c.GetRecord)
}

func (c *Record) GetRecord(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if err := rekuest.ValidVar(ctx, id, "required,len=26,alphanum"); err != nil {
		return err
	}

	record, err := c.ArchiveService.GetRecord(ctx.UserContext(), id, service.ParseFields(ctx.Query("fields")))
	if err != nil {
		return err
	}

	// archived records never change
	cachectrl.OptInCustom(ctx, time.Now(), 24*time.Hour)
	return ctx.JSON(record)
}

func (c *Record) GetRecords(ctx *fiber.Ctx) error {
	var query types.RecordQuery
	if err := rekuest.ValidQuery(ctx, &query); err != nil {
		return err
	}

	records, err := c.ArchiveService.ListByBirthKey(ctx.UserContext(), query.BirthKey, query.Limit)
	if err != nil {
		return err
	}

	cachectrl.OptOut(ctx)
	return ctx.JSON(types.RecordsResponse{
		BirthKey: query.BirthKey,
		Records:  records,
	})
}
