package http_room

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/moviematch/internal/delivery/http/common"
	mocks "github.com/humanbelnik/moviematch/internal/delivery/http/room/mocks"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_room "github.com/humanbelnik/moviematch/internal/usecase/room"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type RoomControllerUnitSuite struct {
	suite.Suite
}

type resources struct {
	rooms  *mocks.RoomService
	engine *gin.Engine
}

func initResources(t provider.T) *resources {
	gin.SetMode(gin.TestMode)
	r := &resources{
		rooms:  mocks.NewRoomService(t),
		engine: gin.New(),
	}
	r.rooms.On("MaxSize").Return(10).Maybe()
	New(r.rooms).RegisterRoutes(r.engine.Group("/api/v1"))
	return r
}

func (r *resources) do(method, target, caller string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if caller != "" {
		req.Header.Set(http_common.CallerHeader, caller)
	}
	w := httptest.NewRecorder()
	r.engine.ServeHTTP(w, req)
	return w
}

func openRoom() model.Room {
	return model.Room{
		Code:         "AB12CD",
		CreatorID:    111,
		Participants: []model.UserID{111, 222},
		CreatedAt:    time.Date(2025, 12, 6, 10, 0, 0, 0, time.UTC),
	}
}

func (s *RoomControllerUnitSuite) TestCreate(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		caller       string
		setupMocks   func(r *resources)
		expectedCode int
	}{
		{
			name:   "Should create room",
			caller: "111",
			setupMocks: func(r *resources) {
				r.rooms.On("Create", mock.Anything, model.UserID(111)).Return(openRoom(), nil).Once()
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Should require caller header",
			setupMocks:   func(r *resources) {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Should reject malformed caller",
			caller:       "abc",
			setupMocks:   func(r *resources) {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:   "Should map member of another room to 409",
			caller: "111",
			setupMocks: func(r *resources) {
				r.rooms.On("Create", mock.Anything, model.UserID(111)).Return(model.Room{}, usecase_room.ErrAlreadyInRoom).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:   "Should map exhausted codes to 500",
			caller: "111",
			setupMocks: func(r *resources) {
				r.rooms.On("Create", mock.Anything, model.UserID(111)).Return(model.Room{}, usecase_room.ErrRoomsUnavailable).Once()
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			w := r.do(http.MethodPost, "/api/v1/rooms", tc.caller)

			assert.Equal(t, tc.expectedCode, w.Code)
		})
	}
}

func (s *RoomControllerUnitSuite) TestJoin(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{name: "Should join room", expectedCode: http.StatusOK},
		{name: "Should map full room to 409", err: usecase_room.ErrRoomFull, expectedCode: http.StatusConflict},
		{name: "Should map unknown room to 404", err: usecase_room.ErrRoomNotFound, expectedCode: http.StatusNotFound},
		{name: "Should map malformed code to 400", err: usecase_room.ErrInvalidCode, expectedCode: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			room := model.Room{}
			if tc.err == nil {
				room = openRoom()
			}
			r.rooms.On("Join", mock.Anything, "ab12cd", model.UserID(222)).Return(room, tc.err).Once()

			w := r.do(http.MethodPost, "/api/v1/rooms/ab12cd/join", "222")

			require.Equal(t, tc.expectedCode, w.Code)
			if tc.err == nil {
				var resp RoomDTO
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, []int64{111, 222}, resp.Participants)
				assert.Equal(t, 10, resp.Capacity)
			}
		})
	}
}

func (s *RoomControllerUnitSuite) TestLeave(t provider.T) {
	t.Parallel()

	t.Run("Should report remaining room", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		left := openRoom()
		left.Participants = []model.UserID{111}
		r.rooms.On("Leave", mock.Anything, model.UserID(222), "AB12CD").
			Return(usecase_room.LeaveResult{Outcome: usecase_room.LeaveOutcomeLeft, Room: left}, nil).Once()

		w := r.do(http.MethodPost, "/api/v1/rooms/AB12CD/leave", "222")

		require.Equal(t, http.StatusOK, w.Code)
		var resp LeaveResponseDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.RoomRemoved)
		require.NotNil(t, resp.Room)
		assert.Equal(t, []int64{111}, resp.Room.Participants)
	})

	t.Run("Should report removed room", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		r.rooms.On("Leave", mock.Anything, model.UserID(111), "AB12CD").
			Return(usecase_room.LeaveResult{Outcome: usecase_room.LeaveOutcomeRoomRemoved}, nil).Once()

		w := r.do(http.MethodPost, "/api/v1/rooms/AB12CD/leave", "111")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"room_removed":true}`, w.Body.String())
	})

	t.Run("Should map non member to 404", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		r.rooms.On("Leave", mock.Anything, model.UserID(333), "AB12CD").
			Return(usecase_room.LeaveResult{}, usecase_room.ErrNotMember).Once()

		w := r.do(http.MethodPost, "/api/v1/rooms/AB12CD/leave", "333")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func (s *RoomControllerUnitSuite) TestCurrent(t provider.T) {
	t.Parallel()

	t.Run("Should return current room", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		room := openRoom()
		r.rooms.On("CurrentRoomOf", mock.Anything, model.UserID(222)).Return(&room, nil).Once()

		w := r.do(http.MethodGet, "/api/v1/rooms/current", "222")

		require.Equal(t, http.StatusOK, w.Code)
		var resp CurrentRoomResponseDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.InRoom)
		require.NotNil(t, resp.Room)
		assert.Equal(t, "AB12CD", resp.Room.Code)
	})

	t.Run("Should report no room", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		r.rooms.On("CurrentRoomOf", mock.Anything, model.UserID(444)).Return(nil, nil).Once()

		w := r.do(http.MethodGet, "/api/v1/rooms/current", "444")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"in_room":false}`, w.Body.String())
	})
}

func (s *RoomControllerUnitSuite) TestInfo(t provider.T) {
	r := initResources(t)
	r.rooms.On("Info", mock.Anything, "AB12CD").Return(model.RoomInfo{
		Room: openRoom(),
		Members: []model.User{
			{TelegramID: 111, FirstName: "Анна"},
			{TelegramID: 222},
		},
		Capacity: 10,
	}, nil).Once()

	w := r.do(http.MethodGet, "/api/v1/rooms/AB12CD", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp RoomInfoResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "AB12CD", resp.Code)
	require.Len(t, resp.Members, 2)
	assert.Equal(t, "Анна", resp.Members[0].FirstName)
}

func TestRoomControllerUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(RoomControllerUnitSuite))
}
