package user_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/hcmteam/personnel-management/internal"
	"github.com/hcmteam/personnel-management/internal/auth"
	"github.com/hcmteam/personnel-management/internal/rbac"
	"github.com/hcmteam/personnel-management/internal/transport"
	"github.com/hcmteam/personnel-management/internal/user"
)

// Mock service for handler tests. Records the arguments of the last call.
type mockUserService struct {
	listUsers  []*user.User
	getUser    *user.User
	returnErr  error
	lastActor  rbac.Actor
	lastDTO    user.UserDTO
	lastSecret string
	lastID     int64
}

func (m *mockUserService) List(actor rbac.Actor) ([]*user.User, error) {
	m.lastActor = actor
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	return m.listUsers, nil
}

func (m *mockUserService) Get(actor rbac.Actor, id int64) (*user.User, error) {
	m.lastActor = actor
	m.lastID = id
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	return m.getUser, nil
}

func (m *mockUserService) Create(actor rbac.Actor, dto user.UserDTO, password string) (*user.User, error) {
	m.lastActor = actor
	m.lastDTO = dto
	m.lastSecret = password
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	created := m.getUser
	return created, nil
}

func (m *mockUserService) Update(actor rbac.Actor, dto user.UserDTO, password string) (*user.User, error) {
	m.lastActor = actor
	m.lastDTO = dto
	m.lastSecret = password
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	return m.getUser, nil
}

func (m *mockUserService) Delete(actor rbac.Actor, id int64) error {
	m.lastActor = actor
	m.lastID = id
	return m.returnErr
}

var _ = Describe("User Handler", func() {
	var (
		service *mockUserService
		handler *user.Handler
		router  chi.Router
		admin   rbac.Actor
	)

	serve := func(method, target string, body []byte, actor *rbac.Actor) *httptest.ResponseRecorder {
		var reader *bytes.Reader
		if body == nil {
			reader = bytes.NewReader(nil)
		} else {
			reader = bytes.NewReader(body)
		}
		req := httptest.NewRequest(method, target, reader)
		if actor != nil {
			req = req.WithContext(auth.ContextWithActor(req.Context(), *actor))
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = &mockUserService{}
		handler = user.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Get("/users", handler.ListUsers)
		router.Post("/users", handler.CreateUser)
		router.Get("/users/{id}", handler.GetUser)
		router.Put("/users/{id}", handler.UpdateUser)
		router.Delete("/users/{id}", handler.DeleteUser)

		admin = rbac.Actor{ID: 1, Role: rbac.RoleAdmin}
	})

	Describe("GET /users", func() {
		It("should return 401 when no actor is attached to the request", func() {
			w := serve(http.MethodGet, "/users", nil, nil)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should return the listed users as JSON", func() {
			service.listUsers = []*user.User{
				{ID: 1, FirstName: "Ivan", LastName: "Petrov", Email: "ivan@hcm.com", Role: rbac.RoleEmployee, DepartmentID: 2},
			}

			w := serve(http.MethodGet, "/users", nil, &admin)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var response []user.User
			err := json.NewDecoder(w.Body).Decode(&response)
			Expect(err).NotTo(HaveOccurred())
			Expect(response).To(HaveLen(1))
			Expect(response[0].Email).To(Equal("ivan@hcm.com"))
			Expect(service.lastActor).To(Equal(admin))
		})

		It("should map a forbidden service error to 403", func() {
			service.returnErr = internal.ErrForbidden

			w := serve(http.MethodGet, "/users", nil, &admin)

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("GET /users/{id}", func() {
		It("should pass the path id to the service", func() {
			service.getUser = &user.User{ID: 7, Email: "gt@hcm.com"}

			w := serve(http.MethodGet, "/users/7", nil, &admin)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(service.lastID).To(Equal(int64(7)))
		})

		It("should return 400 for a non-numeric id", func() {
			w := serve(http.MethodGet, "/users/abc", nil, &admin)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should map not-found to 404", func() {
			service.returnErr = internal.ErrUserNotFound

			w := serve(http.MethodGet, "/users/999", nil, &admin)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("POST /users", func() {
		It("should decode the payload and hand the credential to the service", func() {
			service.getUser = &user.User{ID: 9, FirstName: "Pepi", LastName: "Pepo", Email: "pp@hcm.com"}
			body := []byte(`{"first_name":"Pepi","last_name":"Pepo","email":"pp@hcm.com","job_title":"Developer","salary":50000,"role":"employee","department_id":1,"password":"password123"}`)

			w := serve(http.MethodPost, "/users", body, &admin)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(service.lastDTO.Email).To(Equal("pp@hcm.com"))
			Expect(service.lastSecret).To(Equal("password123"))
		})

		It("should never echo a credential hash in the response", func() {
			service.getUser = &user.User{ID: 9, Email: "pp@hcm.com", PasswordHash: "bcrypt$secret"}
			body := []byte(`{"first_name":"Pepi","last_name":"Pepo","email":"pp@hcm.com","job_title":"Developer","salary":50000,"role":"employee","department_id":1,"password":"password123"}`)

			w := serve(http.MethodPost, "/users", body, &admin)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(w.Body.String()).NotTo(ContainSubstring("bcrypt$secret"))
			Expect(w.Body.String()).NotTo(ContainSubstring("password123"))
		})

		It("should return 400 for a malformed body", func() {
			w := serve(http.MethodPost, "/users", []byte(`{not json`), &admin)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should surface validation details with 400", func() {
			service.returnErr = internal.NewValidationFieldError("email", "invalid email format", internal.ErrCodeInvalidEmail)
			body := []byte(`{"first_name":"Pepi","last_name":"Pepo","email":"broken","job_title":"Developer","salary":50000,"role":"employee","department_id":1,"password":"password123"}`)

			w := serve(http.MethodPost, "/users", body, &admin)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("email"))
		})
	})

	Describe("PUT /users/{id}", func() {
		It("should take the record id from the path, not the body", func() {
			service.getUser = &user.User{ID: 3}
			body := []byte(`{"id":42,"first_name":"Ivan","last_name":"Petrov","email":"ivan@hcm.com","job_title":"Developer","salary":3000,"role":"employee","department_id":2,"password":"Ivan123?"}`)

			w := serve(http.MethodPut, "/users/3", body, &admin)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(service.lastDTO.ID).To(Equal(int64(3)))
		})
	})

	Describe("DELETE /users/{id}", func() {
		It("should return 204 on success", func() {
			w := serve(http.MethodDelete, "/users/3", nil, &admin)

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(service.lastID).To(Equal(int64(3)))
		})

		It("should map a forbidden delete to 403", func() {
			service.returnErr = internal.ErrForbidden
			employee := rbac.Actor{ID: 3, Role: rbac.RoleEmployee}

			w := serve(http.MethodDelete, "/users/1", nil, &employee)

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})
})
