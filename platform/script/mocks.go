package script

import (
	machineTypes "github.com/robbyt/go-symeval/engines/types"
	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/tree"
	"github.com/stretchr/testify/mock"
)

// MockCompiler is a mock implementation of the Compiler interface.
type MockCompiler struct {
	mock.Mock
}

// Compile mocks the Compile method of the Compiler interface.
func (m *MockCompiler) Compile(t *tree.Tree, b data.Binding) (ExecutableContent, error) {
	args := m.Called(t, b)
	execContent, ok := args.Get(0).(ExecutableContent)
	if !ok {
		return nil, args.Error(1)
	}
	return execContent, args.Error(1)
}

// MockExecutableContent is a mock implementation of the ExecutableContent interface for testing.
type MockExecutableContent struct {
	mock.Mock
}

func (m *MockExecutableContent) GetSource() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockExecutableContent) GetByteCode() any {
	args := m.Called()
	return args.Get(0)
}

func (m *MockExecutableContent) GetTree() *tree.Tree {
	args := m.Called()
	t, _ := args.Get(0).(*tree.Tree)
	return t
}

func (m *MockExecutableContent) GetMachineType() machineTypes.Type {
	args := m.Called()
	return args.Get(0).(machineTypes.Type)
}
