// Code generated by MockGen. DO NOT EDIT.
// Source: mcp.go
//
// Generated by this command:
//
//	mockgen -source=mcp.go -destination=mcp_mocks.go -package=mcp
//

// Package mcp is a generated GoMock package.
package mcp

import (
	context "context"
	reflect "reflect"

	exporter "github.com/jflowers/slackfeeder-sub000/internal/exporter"
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	gomock "go.uber.org/mock/gomock"
)

// MockToolHandler is a mock of ToolHandler interface.
type MockToolHandler struct {
	ctrl     *gomock.Controller
	recorder *MockToolHandlerMockRecorder
	isgomock struct{}
}

// MockToolHandlerMockRecorder is the mock recorder for MockToolHandler.
type MockToolHandlerMockRecorder struct {
	mock *MockToolHandler
}

// NewMockToolHandler creates a new mock instance.
func NewMockToolHandler(ctrl *gomock.Controller) *MockToolHandler {
	mock := &MockToolHandler{ctrl: ctrl}
	mock.recorder = &MockToolHandlerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockToolHandler) EXPECT() *MockToolHandlerMockRecorder {
	return m.recorder
}

// ExportOne mocks base method.
func (m *MockToolHandler) ExportOne(ctx context.Context, req *mcp.CallToolRequest, input exporter.ExportConversationInput) (*mcp.CallToolResult, exporter.ExportConversationOutput, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ExportOne", ctx, req, input)
	ret0, _ := ret[0].(*mcp.CallToolResult)
	ret1, _ := ret[1].(exporter.ExportConversationOutput)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// ExportOne indicates an expected call of ExportOne.
func (mr *MockToolHandlerMockRecorder) ExportOne(ctx, req, input any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ExportOne", reflect.TypeOf((*MockToolHandler)(nil).ExportOne), ctx, req, input)
}

// ListConversations mocks base method.
func (m *MockToolHandler) ListConversations(ctx context.Context, req *mcp.CallToolRequest, input exporter.ListConversationsInput) (*mcp.CallToolResult, exporter.ListConversationsOutput, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListConversations", ctx, req, input)
	ret0, _ := ret[0].(*mcp.CallToolResult)
	ret1, _ := ret[1].(exporter.ListConversationsOutput)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// ListConversations indicates an expected call of ListConversations.
func (mr *MockToolHandlerMockRecorder) ListConversations(ctx, req, input any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListConversations", reflect.TypeOf((*MockToolHandler)(nil).ListConversations), ctx, req, input)
}

// ResolveUser mocks base method.
func (m *MockToolHandler) ResolveUser(ctx context.Context, req *mcp.CallToolRequest, input exporter.ResolveUserInput) (*mcp.CallToolResult, exporter.ResolveUserOutput, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResolveUser", ctx, req, input)
	ret0, _ := ret[0].(*mcp.CallToolResult)
	ret1, _ := ret[1].(exporter.ResolveUserOutput)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// ResolveUser indicates an expected call of ResolveUser.
func (mr *MockToolHandlerMockRecorder) ResolveUser(ctx, req, input any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResolveUser", reflect.TypeOf((*MockToolHandler)(nil).ResolveUser), ctx, req, input)
}
