// Code generated by MockGen. DO NOT EDIT.
// Source: store.go
//
// Generated by this command:
//
//	mockgen -source=store.go -destination=store_mocks.go -package=drive
//

// Package drive is a generated GoMock package.
package drive

import (
	context "context"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockDocumentStore is a mock of DocumentStore interface.
type MockDocumentStore struct {
	ctrl     *gomock.Controller
	recorder *MockDocumentStoreMockRecorder
	isgomock struct{}
}

// MockDocumentStoreMockRecorder is the mock recorder for MockDocumentStore.
type MockDocumentStoreMockRecorder struct {
	mock *MockDocumentStore
}

// NewMockDocumentStore creates a new mock instance.
func NewMockDocumentStore(ctrl *gomock.Controller) *MockDocumentStore {
	mock := &MockDocumentStore{ctrl: ctrl}
	mock.recorder = &MockDocumentStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockDocumentStore) EXPECT() *MockDocumentStoreMockRecorder {
	return m.recorder
}

// CreateOrGetFolder mocks base method.
func (m *MockDocumentStore) CreateOrGetFolder(ctx context.Context, name, parentID string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateOrGetFolder", ctx, name, parentID)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateOrGetFolder indicates an expected call of CreateOrGetFolder.
func (mr *MockDocumentStoreMockRecorder) CreateOrGetFolder(ctx, name, parentID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateOrGetFolder", reflect.TypeOf((*MockDocumentStore)(nil).CreateOrGetFolder), ctx, name, parentID)
}

// DocumentExists mocks base method.
func (m *MockDocumentStore) DocumentExists(ctx context.Context, name, folderID string) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DocumentExists", ctx, name, folderID)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DocumentExists indicates an expected call of DocumentExists.
func (mr *MockDocumentStoreMockRecorder) DocumentExists(ctx, name, folderID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DocumentExists", reflect.TypeOf((*MockDocumentStore)(nil).DocumentExists), ctx, name, folderID)
}

// FolderPermissions mocks base method.
func (m *MockDocumentStore) FolderPermissions(ctx context.Context, folderID string) ([]Permission, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FolderPermissions", ctx, folderID)
	ret0, _ := ret[0].([]Permission)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FolderPermissions indicates an expected call of FolderPermissions.
func (mr *MockDocumentStoreMockRecorder) FolderPermissions(ctx, folderID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FolderPermissions", reflect.TypeOf((*MockDocumentStore)(nil).FolderPermissions), ctx, folderID)
}

// RevokeFolderAccess mocks base method.
func (m *MockDocumentStore) RevokeFolderAccess(ctx context.Context, folderID, permissionID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RevokeFolderAccess", ctx, folderID, permissionID)
	ret0, _ := ret[0].(error)
	return ret0
}

// RevokeFolderAccess indicates an expected call of RevokeFolderAccess.
func (mr *MockDocumentStoreMockRecorder) RevokeFolderAccess(ctx, folderID, permissionID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RevokeFolderAccess", reflect.TypeOf((*MockDocumentStore)(nil).RevokeFolderAccess), ctx, folderID, permissionID)
}

// SetWatermark mocks base method.
func (m *MockDocumentStore) SetWatermark(ctx context.Context, folderID, value string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetWatermark", ctx, folderID, value)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetWatermark indicates an expected call of SetWatermark.
func (mr *MockDocumentStoreMockRecorder) SetWatermark(ctx, folderID, value any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetWatermark", reflect.TypeOf((*MockDocumentStore)(nil).SetWatermark), ctx, folderID, value)
}

// ShareFolder mocks base method.
func (m *MockDocumentStore) ShareFolder(ctx context.Context, folderID, email string, notify bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ShareFolder", ctx, folderID, email, notify)
	ret0, _ := ret[0].(error)
	return ret0
}

// ShareFolder indicates an expected call of ShareFolder.
func (mr *MockDocumentStoreMockRecorder) ShareFolder(ctx, folderID, email, notify any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ShareFolder", reflect.TypeOf((*MockDocumentStore)(nil).ShareFolder), ctx, folderID, email, notify)
}

// UploadDocument mocks base method.
func (m *MockDocumentStore) UploadDocument(ctx context.Context, name, folderID, text string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UploadDocument", ctx, name, folderID, text)
	ret0, _ := ret[0].(error)
	return ret0
}

// UploadDocument indicates an expected call of UploadDocument.
func (mr *MockDocumentStoreMockRecorder) UploadDocument(ctx, name, folderID, text any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UploadDocument", reflect.TypeOf((*MockDocumentStore)(nil).UploadDocument), ctx, name, folderID, text)
}

// Watermark mocks base method.
func (m *MockDocumentStore) Watermark(ctx context.Context, folderID string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Watermark", ctx, folderID)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Watermark indicates an expected call of Watermark.
func (mr *MockDocumentStoreMockRecorder) Watermark(ctx, folderID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Watermark", reflect.TypeOf((*MockDocumentStore)(nil).Watermark), ctx, folderID)
}
