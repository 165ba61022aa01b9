// Package rpc defines the stockkeeper.Inventory gRPC service: its
// messages, server registration and a typed client.
package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "stockkeeper.Inventory"

const (
	addMethod      = "/" + ServiceName + "/Add"
	removeMethod   = "/" + ServiceName + "/Remove"
	getMethod      = "/" + ServiceName + "/Get"
	lowStockMethod = "/" + ServiceName + "/LowStock"
	reportMethod   = "/" + ServiceName + "/Report"
)

type StockRequest struct {
	Item     string `json:"item"`
	Quantity int64  `json:"quantity"`
}

type StockResponse struct {
	Item     string `json:"item"`
	Quantity int64  `json:"quantity"`
}

type GetRequest struct {
	Item string `json:"item"`
}

type LowStockRequest struct {
	Threshold int64 `json:"threshold"`
}

type LowStockResponse struct {
	Items []string `json:"items"`
}

type ReportRequest struct{}

type StockLevel struct {
	Item     string `json:"item"`
	Quantity int64  `json:"quantity"`
}

type ReportResponse struct {
	Items []StockLevel `json:"items"`
}

type InventoryServer interface {
	Add(context.Context, *StockRequest) (*StockResponse, error)
	Remove(context.Context, *StockRequest) (*StockResponse, error)
	Get(context.Context, *GetRequest) (*StockResponse, error)
	LowStock(context.Context, *LowStockRequest) (*LowStockResponse, error)
	Report(context.Context, *ReportRequest) (*ReportResponse, error)
}

func RegisterInventoryServer(s grpc.ServiceRegistrar, srv InventoryServer) {
	s.RegisterService(&inventoryServiceDesc, srv)
}

var inventoryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InventoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Add", Handler: unaryHandler(addMethod, InventoryServer.Add)},
		{MethodName: "Remove", Handler: unaryHandler(removeMethod, InventoryServer.Remove)},
		{MethodName: "Get", Handler: unaryHandler(getMethod, InventoryServer.Get)},
		{MethodName: "LowStock", Handler: unaryHandler(lowStockMethod, InventoryServer.LowStock)},
		{MethodName: "Report", Handler: unaryHandler(reportMethod, InventoryServer.Report)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "stockkeeper/inventory",
}

func unaryHandler[Req, Resp any](
	fullMethod string,
	call func(InventoryServer, context.Context, *Req) (*Resp, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(InventoryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(InventoryServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// InventoryClient calls the inventory service over an existing connection.
type InventoryClient struct {
	cc grpc.ClientConnInterface
}

func NewInventoryClient(cc grpc.ClientConnInterface) *InventoryClient {
	return &InventoryClient{cc: cc}
}

func (c *InventoryClient) Add(ctx context.Context, in *StockRequest, opts ...grpc.CallOption) (*StockResponse, error) {
	out := new(StockResponse)
	if err := c.invoke(ctx, addMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) Remove(ctx context.Context, in *StockRequest, opts ...grpc.CallOption) (*StockResponse, error) {
	out := new(StockResponse)
	if err := c.invoke(ctx, removeMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*StockResponse, error) {
	out := new(StockResponse)
	if err := c.invoke(ctx, getMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) LowStock(ctx context.Context, in *LowStockRequest, opts ...grpc.CallOption) (*LowStockResponse, error) {
	out := new(LowStockResponse)
	if err := c.invoke(ctx, lowStockMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) Report(ctx context.Context, in *ReportRequest, opts ...grpc.CallOption) (*ReportResponse, error) {
	out := new(ReportResponse)
	if err := c.invoke(ctx, reportMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}
