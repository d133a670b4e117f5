package match

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	MatchService_Vote_FullMethodName              = "/match.v1.MatchService/Vote"
	MatchService_LuckyPick_FullMethodName         = "/match.v1.MatchService/LuckyPick"
	MatchService_ListRecentLiked_FullMethodName   = "/match.v1.MatchService/ListRecentLiked"
	MatchService_ListRecentLikedMe_FullMethodName = "/match.v1.MatchService/ListRecentLikedMe"
	MatchService_ListRecentMatched_FullMethodName = "/match.v1.MatchService/ListRecentMatched"
)

// MatchServiceClient is the client API for MatchService.
type MatchServiceClient interface {
	Vote(ctx context.Context, in *VoteRequest, opts ...grpc.CallOption) (*VoteResponse, error)
	LuckyPick(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*LuckyPickResponse, error)
	ListRecentLiked(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ProfilesResponse, error)
	ListRecentLikedMe(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ProfilesResponse, error)
	ListRecentMatched(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ProfilesResponse, error)
}

type matchServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewMatchServiceClient returns a client that always calls with the JSON codec.
func NewMatchServiceClient(cc grpc.ClientConnInterface) MatchServiceClient {
	return &matchServiceClient{cc}
}

func (c *matchServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *matchServiceClient) Vote(ctx context.Context, in *VoteRequest, opts ...grpc.CallOption) (*VoteResponse, error) {
	out := new(VoteResponse)
	if err := c.invoke(ctx, MatchService_Vote_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matchServiceClient) LuckyPick(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*LuckyPickResponse, error) {
	out := new(LuckyPickResponse)
	if err := c.invoke(ctx, MatchService_LuckyPick_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matchServiceClient) ListRecentLiked(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ProfilesResponse, error) {
	out := new(ProfilesResponse)
	if err := c.invoke(ctx, MatchService_ListRecentLiked_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matchServiceClient) ListRecentLikedMe(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ProfilesResponse, error) {
	out := new(ProfilesResponse)
	if err := c.invoke(ctx, MatchService_ListRecentLikedMe_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matchServiceClient) ListRecentMatched(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ProfilesResponse, error) {
	out := new(ProfilesResponse)
	if err := c.invoke(ctx, MatchService_ListRecentMatched_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// MatchServiceServer is the server API for MatchService.
// Implementations must embed UnimplementedMatchServiceServer.
type MatchServiceServer interface {
	Vote(context.Context, *VoteRequest) (*VoteResponse, error)
	LuckyPick(context.Context, *UserRequest) (*LuckyPickResponse, error)
	ListRecentLiked(context.Context, *UserRequest) (*ProfilesResponse, error)
	ListRecentLikedMe(context.Context, *UserRequest) (*ProfilesResponse, error)
	ListRecentMatched(context.Context, *UserRequest) (*ProfilesResponse, error)
	mustEmbedUnimplementedMatchServiceServer()
}

// UnimplementedMatchServiceServer answers every RPC with codes.Unimplemented.
type UnimplementedMatchServiceServer struct{}

func (UnimplementedMatchServiceServer) Vote(context.Context, *VoteRequest) (*VoteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Vote not implemented")
}
func (UnimplementedMatchServiceServer) LuckyPick(context.Context, *UserRequest) (*LuckyPickResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method LuckyPick not implemented")
}
func (UnimplementedMatchServiceServer) ListRecentLiked(context.Context, *UserRequest) (*ProfilesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListRecentLiked not implemented")
}
func (UnimplementedMatchServiceServer) ListRecentLikedMe(context.Context, *UserRequest) (*ProfilesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListRecentLikedMe not implemented")
}
func (UnimplementedMatchServiceServer) ListRecentMatched(context.Context, *UserRequest) (*ProfilesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListRecentMatched not implemented")
}
func (UnimplementedMatchServiceServer) mustEmbedUnimplementedMatchServiceServer() {}

func RegisterMatchServiceServer(s grpc.ServiceRegistrar, srv MatchServiceServer) {
	s.RegisterService(&MatchService_ServiceDesc, srv)
}

func _MatchService_Vote_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(VoteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MatchServiceServer).Vote(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MatchService_Vote_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MatchServiceServer).Vote(ctx, req.(*VoteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// userHandler builds the handler for the RPCs taking a UserRequest.
func userHandler[R any](method string, call func(MatchServiceServer, context.Context, *UserRequest) (R, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(UserRequest)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MatchServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MatchServiceServer), ctx, req.(*UserRequest))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// MatchService_ServiceDesc is the grpc.ServiceDesc for MatchService.
var MatchService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "match.v1.MatchService",
	HandlerType: (*MatchServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Vote",
			Handler:    _MatchService_Vote_Handler,
		},
		{
			MethodName: "LuckyPick",
			Handler:    userHandler(MatchService_LuckyPick_FullMethodName, MatchServiceServer.LuckyPick),
		},
		{
			MethodName: "ListRecentLiked",
			Handler:    userHandler(MatchService_ListRecentLiked_FullMethodName, MatchServiceServer.ListRecentLiked),
		},
		{
			MethodName: "ListRecentLikedMe",
			Handler:    userHandler(MatchService_ListRecentLikedMe_FullMethodName, MatchServiceServer.ListRecentLikedMe),
		},
		{
			MethodName: "ListRecentMatched",
			Handler:    userHandler(MatchService_ListRecentMatched_FullMethodName, MatchServiceServer.ListRecentMatched),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "match.proto",
}
