package console

import (
	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type mockController struct {
	mock.Mock
}

func (that *mockController) RequestMove(row, col int) error {
	return that.Called(row, col).Error(0)
}

func (that *mockController) RequestUndo() error {
	return that.Called().Error(0)
}

func (that *mockController) RequestRedo() error {
	return that.Called().Error(0)
}

func (that *mockController) RequestReset() {
	that.Called()
}

func (that *mockController) DisplayState() tictactoe.DisplayState {
	return that.Called().Get(0).(tictactoe.DisplayState)
}

func (that *mockController) IsFinished() bool {
	return that.Called().Bool(0)
}

func (that *mockController) Subscribe(listener tictactoe.Listener) {
	that.Called(listener)
}
