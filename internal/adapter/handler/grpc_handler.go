package handler

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/stockkeeper/internal/adapter/handler/rpc"
	"github.com/rl1809/stockkeeper/internal/core/domain"
)

type GRPCHandler struct {
	inventory *LockedInventory
	logger    *zap.Logger
}

var _ rpc.InventoryServer = (*GRPCHandler)(nil)

func NewGRPCHandler(inventory *LockedInventory, logger *zap.Logger) *GRPCHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GRPCHandler{inventory: inventory, logger: logger}
}

func (h *GRPCHandler) Add(ctx context.Context, req *rpc.StockRequest) (*rpc.StockResponse, error) {
	qty, err := h.inventory.Add(req.Item, int(req.Quantity))
	if err != nil {
		return nil, h.toStatus("Add", err)
	}
	return &rpc.StockResponse{Item: req.Item, Quantity: int64(qty)}, nil
}

func (h *GRPCHandler) Remove(ctx context.Context, req *rpc.StockRequest) (*rpc.StockResponse, error) {
	qty, err := h.inventory.Remove(req.Item, int(req.Quantity))
	if err != nil {
		return nil, h.toStatus("Remove", err)
	}
	return &rpc.StockResponse{Item: req.Item, Quantity: int64(qty)}, nil
}

func (h *GRPCHandler) Get(ctx context.Context, req *rpc.GetRequest) (*rpc.StockResponse, error) {
	qty, err := h.inventory.Quantity(req.Item)
	if err != nil {
		return nil, h.toStatus("Get", err)
	}
	return &rpc.StockResponse{Item: req.Item, Quantity: int64(qty)}, nil
}

func (h *GRPCHandler) LowStock(ctx context.Context, req *rpc.LowStockRequest) (*rpc.LowStockResponse, error) {
	return &rpc.LowStockResponse{Items: h.inventory.LowStock(int(req.Threshold))}, nil
}

func (h *GRPCHandler) Report(ctx context.Context, req *rpc.ReportRequest) (*rpc.ReportResponse, error) {
	levels := h.inventory.Report()
	items := make([]rpc.StockLevel, 0, len(levels))
	for _, l := range levels {
		items = append(items, rpc.StockLevel{Item: l.Item, Quantity: int64(l.Quantity)})
	}
	return &rpc.ReportResponse{Items: items}, nil
}

func (h *GRPCHandler) toStatus(method string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		h.logger.Error("grpc call failed", zap.String("method", method), zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
}
