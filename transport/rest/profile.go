package rest

import (
	"github.com/buzkaaclicker/vitae"
	"github.com/gofiber/fiber/v2"
)

type ProfileController struct {
	Store      vitae.ProfileStore
	Activities vitae.ActivityStore
}

func (c *ProfileController) InstallTo(app *fiber.App) {
	app.Post("/api/save", c.serveSave)
}

func (c *ProfileController) serveSave(ctx *fiber.Ctx) error {
	doc, err := vitae.ParseProfileDocument(ctx.Body())
	if err != nil {
		requestLog(ctx).WithError(err).Debugln("Profile document rejected.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid data format")
	}

	err = c.Store.Save(ctx.Context(), doc)
	if err != nil {
		requestLog(ctx).WithError(err).Errorln("Could not save profile.")
		return fiber.NewError(fiber.StatusInternalServerError, "write failed")
	}

	recordActivity(ctx, c.Activities, vitae.Activity{
		Name: vitae.ActivityProfileSaved,
		Data: map[string]interface{}{"size": len(doc)},
	})
	return ctx.JSON(Response{Success: true, Message: "saved"})
}
