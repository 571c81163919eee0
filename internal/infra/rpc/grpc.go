package rpc

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// GRPCProvider implements Provider over a gRPC connection. Calls are made
// with dynamic structpb messages so no generated stubs are required; method
// names are full gRPC method paths (e.g. "/ledger.v1.Ledger/Submit").
type GRPCProvider struct {
	name     string
	endpoint string
	conn     *grpc.ClientConn
}

// NewGRPCProvider creates a new gRPC provider. The scheme of the endpoint
// decides whether TLS is used.
func NewGRPCProvider(name, endpoint string) (*GRPCProvider, error) {
	target := endpoint
	var opts []grpc.DialOption

	if strings.HasPrefix(endpoint, "https://") || strings.HasSuffix(endpoint, ":443") {
		creds := credentials.NewTLS(&tls.Config{})
		opts = append(opts, grpc.WithTransportCredentials(creds))
		target = strings.TrimPrefix(target, "https://")
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
		target = strings.TrimPrefix(target, "http://")
	}

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial grpc endpoint %s: %w", target, err)
	}

	return &GRPCProvider{name: name, endpoint: endpoint, conn: conn}, nil
}

func (p *GRPCProvider) Name() string {
	return p.name
}

// Conn returns the underlying connection for callers that carry generated
// clients of their own.
func (p *GRPCProvider) Conn() grpc.ClientConnInterface {
	return p.conn
}

// Call invokes a unary method with the params packed into a struct message
// and the reply unpacked back into raw JSON.
func (p *GRPCProvider) Call(
	ctx context.Context,
	method string,
	params []any,
) (json.RawMessage, error) {
	fields := map[string]any{}
	if len(params) == 1 {
		m, ok := params[0].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("grpc call %s: params must be a single object", method)
		}
		fields = m
	} else if len(params) > 1 {
		return nil, fmt.Errorf("grpc call %s: params must be a single object", method)
	}

	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	reply := &structpb.Struct{}
	if err := p.conn.Invoke(ctx, method, req, reply); err != nil {
		return nil, fmt.Errorf("grpc call %s: %w", method, err)
	}

	out, err := json.Marshal(reply.AsMap())
	if err != nil {
		return nil, fmt.Errorf("marshal reply: %w", err)
	}
	return out, nil
}

// Close tears down the connection.
func (p *GRPCProvider) Close() error {
	return p.conn.Close()
}
