package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/application"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/pipeline"
)

// ReservationHandler は予約APIのトランスポート層
// コマンド／クエリをパイプライン経由でアプリケーション層へ渡すだけで、
// ビジネスロジックは持たない
type ReservationHandler struct {
	pipeline *pipeline.Pipeline
	create   pipeline.Handler[application.CreateReservationCommand, application.ReservationResult]
	confirm  pipeline.Handler[application.ConfirmReservationCommand, application.ReservationResult]
	cancel   pipeline.Handler[application.CancelReservationCommand, application.ReservationResult]
	list     pipeline.Handler[application.GetReservationsQuery, application.ReservationListResult]
}

func NewReservationHandler(
	p *pipeline.Pipeline,
	create pipeline.Handler[application.CreateReservationCommand, application.ReservationResult],
	confirm pipeline.Handler[application.ConfirmReservationCommand, application.ReservationResult],
	cancel pipeline.Handler[application.CancelReservationCommand, application.ReservationResult],
	list pipeline.Handler[application.GetReservationsQuery, application.ReservationListResult],
) *ReservationHandler {
	return &ReservationHandler{
		pipeline: p, create: create, confirm: confirm, cancel: cancel, list: list,
	}
}

// Create godoc
// @Summary 予約を作成
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body application.CreateReservationCommand true "予約情報"
// @Success 201 {object} application.ReservationResult
// @Failure 400 {object} api.ErrorResponse
// @Router /reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	var cmd application.CreateReservationCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	result, err := pipeline.Execute(c.Request().Context(), h.pipeline, h.create, cmd)
	if err != nil {
		return err
	}
	if !result.Success {
		return c.JSON(http.StatusBadRequest, result)
	}
	return c.JSON(http.StatusCreated, result)
}

// Confirm godoc
// @Summary 予約を確定
// @Tags reservations
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} application.ReservationResult
// @Failure 400 {object} api.ErrorResponse
// @Router /reservations/{id}/confirm [post]
func (h *ReservationHandler) Confirm(c echo.Context) error {
	cmd := application.ConfirmReservationCommand{ReservationID: c.Param("id")}
	result, err := pipeline.Execute(c.Request().Context(), h.pipeline, h.confirm, cmd)
	if err != nil {
		return err
	}
	if !result.Success {
		return c.JSON(http.StatusBadRequest, result)
	}
	return c.JSON(http.StatusOK, result)
}

// CancelRequest は予約キャンセルのリクエストボディ
type CancelRequest struct {
	Reason string `json:"reason,omitempty"`
}

// Cancel godoc
// @Summary 予約をキャンセル
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "予約ID"
// @Param request body CancelRequest false "キャンセル理由"
// @Success 200 {object} application.ReservationResult
// @Failure 400 {object} api.ErrorResponse
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	var req CancelRequest
	// ボディは任意
	_ = c.Bind(&req)
	cmd := application.CancelReservationCommand{
		ReservationID: c.Param("id"),
		Reason:        req.Reason,
	}
	result, err := pipeline.Execute(c.Request().Context(), h.pipeline, h.cancel, cmd)
	if err != nil {
		return err
	}
	if !result.Success {
		return c.JSON(http.StatusBadRequest, result)
	}
	return c.JSON(http.StatusOK, result)
}

// GetByCustomer godoc
// @Summary 顧客の予約一覧を取得
// @Tags reservations
// @Produce json
// @Param customer_id query string true "顧客ID"
// @Success 200 {object} application.ReservationListResult
// @Failure 400 {object} api.ErrorResponse
// @Router /reservations [get]
func (h *ReservationHandler) GetByCustomer(c echo.Context) error {
	q := application.GetReservationsQuery{CustomerID: c.QueryParam("customer_id")}
	result, err := pipeline.Execute(c.Request().Context(), h.pipeline, h.list, q)
	if err != nil {
		return err
	}
	if !result.Success {
		return c.JSON(http.StatusBadRequest, result)
	}
	return c.JSON(http.StatusOK, result)
}
