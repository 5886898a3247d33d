package http

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts every endpoint. Mutating day closing routes go through idem when it is set.
func RegisterRoutes(e *echo.Echo, h *Handler, dc *DayClosingHandler, idem echo.MiddlewareFunc) {
	e.GET("/health", h.Health)

	var mw []echo.MiddlewareFunc
	if idem != nil {
		mw = append(mw, idem)
	}
	g := e.Group("/day-closing", mw...)
	g.GET("/:date/cashiers", dc.ListCashiers)
	g.POST("/:date/openings", dc.InitializeOpening)
	g.PUT("/:date/openings/:cashier_id", dc.UpdateOpening)
	g.POST("/:date/refresh", dc.Refresh)
	g.GET("/:date/summary", dc.Summary)
	g.GET("/:date/lock-status", dc.LockStatus)
	g.POST("/:date/declarations", dc.Declare)
	g.POST("/closes/:close_id/approval", dc.Approve)
	g.POST("/:date/lock", dc.Lock)
	g.POST("/:date/reopen", dc.Reopen)
	g.GET("/:date/eod-report", dc.EODReport)

	e.GET("/reports/cash-closing", dc.CashClosingReport)
}
