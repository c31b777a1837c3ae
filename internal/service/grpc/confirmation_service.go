package grpcsvc

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/confirmation"
)

const (
	// ServiceName — полное имя gRPC-сервиса подтверждения заказов.
	ServiceName = "storefront.v1.OrderConfirmation"
	ConfirmOrderMethod = "/" + ServiceName + "/ConfirmOrder"

	fieldNotificationAddress = "notificationAddress"
	fieldProductID           = "productId"

	confirmedMessage = "Order confirmation sent"
)

// Confirmer подтверждает заказ push-уведомлением.
type Confirmer interface {
	Confirm(ctx context.Context, req confirmation.Request) (domain.DeliveryReceipt, error)
}

// ConfirmationServer — серверная сторона storefront.v1.OrderConfirmation.
// Запрос и ответ передаются как google.protobuf.Struct с теми же полями, что и HTTP API.
type ConfirmationServer interface {
	ConfirmOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ConfirmationService реализует ConfirmationServer поверх сервиса подтверждения.
type ConfirmationService struct {
	confirmer Confirmer
	logger    *log.Entry
}

// NewConfirmationService конструирует сервис с зависимостями.
func NewConfirmationService(confirmer Confirmer, logger *log.Entry) *ConfirmationService {
	if logger == nil {
		logger = log.New().WithField("component", "confirmation-grpc")
	}
	return &ConfirmationService{confirmer: confirmer, logger: logger}
}

// ConfirmOrder подтверждает заказ.
func (s *ConfirmationService) ConfirmOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	fields := req.GetFields()
	receipt, err := s.confirmer.Confirm(ctx, confirmation.Request{
		NotificationAddress: strings.TrimSpace(fields[fieldNotificationAddress].GetStringValue()),
		ProductID:           strings.TrimSpace(fields[fieldProductID].GetStringValue()),
	})
	if err != nil {
		return nil, toStatus(err)
	}

	resp, err := structpb.NewStruct(map[string]any{
		"success":   true,
		"message":   confirmedMessage,
		"messageId": receipt.MessageID,
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to encode confirmation response")
		return nil, status.Error(codes.Internal, "failed to encode response")
	}
	return resp, nil
}

// toStatus переводит доменную ошибку в gRPC-статус без деталей провайдера.
func toStatus(err error) error {
	switch {
	case domain.IsBadRequest(err):
		return status.Error(codes.InvalidArgument, "notificationAddress and productId are required")
	case domain.IsNotFound(err):
		return status.Error(codes.NotFound, "product not found")
	case domain.IsDispatchFailure(err):
		return status.Error(codes.Unavailable, "failed to send notification")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func confirmOrderHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConfirmationServer).ConfirmOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ConfirmOrderMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ConfirmationServer).ConfirmOrder(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc описывает сервис без сгенерированных stub-ов.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ConfirmationServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ConfirmOrder",
			Handler:    confirmOrderHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/order_confirmation.proto",
}

// RegisterConfirmationServer регистрирует сервис на gRPC-сервере.
func RegisterConfirmationServer(registrar grpc.ServiceRegistrar, srv ConfirmationServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

// ConfirmOrder вызывает удалённый ConfirmOrder через клиентское соединение.
func ConfirmOrder(ctx context.Context, conn grpc.ClientConnInterface, notificationAddress, productID string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(map[string]any{
		fieldNotificationAddress: notificationAddress,
		fieldProductID:           productID,
	})
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := conn.Invoke(ctx, ConfirmOrderMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

var _ ConfirmationServer = (*ConfirmationService)(nil)
