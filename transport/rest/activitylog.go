package rest

import (
	"github.com/buzkaaclicker/vitae"
	"github.com/gofiber/fiber/v2"
)

// recordActivity stores activity if store is set. Failures are only logged.
func recordActivity(ctx *fiber.Ctx, store vitae.ActivityStore, activity vitae.Activity) {
	if store == nil {
		return
	}
	err := store.AddLog(ctx.Context(), activity)
	if err != nil {
		requestLog(ctx).
			WithError(err).
			WithField("activity", activity.Name).
			Warningln("Could not record activity.")
	}
}
