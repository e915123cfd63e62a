package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rajputgovind/Trip--Project-Apis/internal/config"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/destination"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/document"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/joining"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/role"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/trip"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/tripview"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/user"
	"github.com/rajputgovind/Trip--Project-Apis/internal/handlers"
	"github.com/rajputgovind/Trip--Project-Apis/internal/middleware"
)

type RouterDeps struct {
	Cfg            config.Config
	RoleRepo       *role.Repo
	UserSvc        *user.Service
	DestinationSvc *destination.Service
	DocumentSvc    *document.Service
	TripSvc        *trip.Service
	JoiningSvc     *joining.Service
	Views          *tripview.Composer
	Uploads        *handlers.Uploads
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(d.Cfg.AllowedOrigins))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})

	// ===== Public user routes =====
	r.Post("/v1/users/register", func(w http.ResponseWriter, r *http.Request) {
		var in user.RegisterInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		out, err := d.UserSvc.Register(r.Context(), in)
		if err != nil {
			status, msg := mapUserError(err)
			Fail(w, status, msg)
			return
		}
		OK(w, 201, "user registered successfully", out)
	})

	r.Post("/v1/users/login", func(w http.ResponseWriter, r *http.Request) {
		var in user.LoginInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		out, token, err := d.UserSvc.Login(r.Context(), in)
		if err != nil {
			status, msg := mapUserError(err)
			Fail(w, status, msg)
			return
		}
		OK(w, 200, "login successful", map[string]any{"user": out, "token": token})
	})

	r.Post("/v1/users/forgot-password", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		if err := d.UserSvc.ForgotPassword(r.Context(), body.Email); err != nil {
			status, msg := mapUserError(err)
			Fail(w, status, msg)
			return
		}
		OK(w, 200, "otp sent to your email", nil)
	})

	r.Post("/v1/users/reset-password", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			OTP      string `json:"otp"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		if err := d.UserSvc.ResetPassword(r.Context(), body.Email, body.OTP, body.Password); err != nil {
			status, msg := mapUserError(err)
			Fail(w, status, msg)
			return
		}
		OK(w, 200, "password updated successfully", nil)
	})

	// ===== Public trip routes =====
	r.Get("/v1/trips", func(w http.ResponseWriter, r *http.Request) {
		f, page, limit, err := parseTripFilters(r)
		if err != nil {
			Fail(w, 400, err.Error())
			return
		}
		out, err := d.Views.List(r.Context(), f, page, limit)
		if err != nil {
			status, msg := mapTripError(err)
			Fail(w, status, msg)
			return
		}
		OK(w, 200, "trips fetched successfully", out)
	})

	r.Get("/v1/trips/{tripId}", func(w http.ResponseWriter, r *http.Request) {
		tripID := chi.URLParam(r, "tripId")
		if tripID == "" {
			Fail(w, 400, "missing tripId")
			return
		}
		out, err := d.Views.Detail(r.Context(), tripID)
		if err != nil {
			status, msg := mapTripError(err)
			Fail(w, status, msg)
			return
		}
		OK(w, 200, "trip fetched successfully", out)
	})

	// Protected routes
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.WithAuth(d.Cfg.JWTSecret))

		pr.Get("/v1/me", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			out, err := d.UserSvc.Get(r.Context(), au.ID)
			if err != nil {
				status, msg := mapUserError(err)
				Fail(w, status, msg)
				return
			}
			OK(w, 200, "profile fetched successfully", out)
		})

		pr.Put("/v1/profile", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			var in user.UpdateProfileInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			out, err := d.UserSvc.UpdateProfile(r.Context(), au.ID, in)
			if err != nil {
				status, msg := mapUserError(err)
				Fail(w, status, msg)
				return
			}
			OK(w, 200, "profile updated successfully", out)
		})

		// ===== Joining request routes =====
		pr.Post("/v1/trips/{tripId}/joining-requests", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			tripID := chi.URLParam(r, "tripId")
			if tripID == "" {
				Fail(w, 400, "missing tripId")
				return
			}
			var fields map[string]string
			if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			out, err := d.JoiningSvc.Create(r.Context(), au.ID, tripID, fields)
			if err != nil {
				status, msg := mapJoiningError(err)
				Fail(w, status, msg)
				return
			}
			OK(w, 201, "joining request created successfully", out)
		})

		pr.Get("/v1/my-trips", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			page, limit := parsePageLimit(r)
			out, err := d.Views.ListForUser(r.Context(), au.ID, page, limit)
			if err != nil {
				status, msg := mapJoiningError(err)
				Fail(w, status, msg)
				return
			}
			OK(w, 200, "joined trips fetched successfully", out)
		})

		pr.Post("/v1/joining-requests/{requestId}/file", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			requestID := chi.URLParam(r, "requestId")
			if requestID == "" {
				Fail(w, 400, "missing requestId")
				return
			}
			var body struct {
				UploadFile string `json:"uploadFile"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			out, err := d.JoiningSvc.AttachFile(r.Context(), au.ID, requestID, body.UploadFile)
			if err != nil {
				status, msg := mapJoiningError(err)
				Fail(w, status, msg)
				return
			}
			OK(w, 200, "file uploaded successfully", out)
		})

		pr.Delete("/v1/joining-requests/{requestId}", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			requestID := chi.URLParam(r, "requestId")
			if requestID == "" {
				Fail(w, 400, "missing requestId")
				return
			}
			if err := d.JoiningSvc.Delete(r.Context(), au.ID, requestID); err != nil {
				status, msg := mapJoiningError(err)
				Fail(w, status, msg)
				return
			}
			OK(w, 200, "joining request deleted successfully", nil)
		})

		// ===== Upload routes =====
		pr.Post("/v1/uploads/signed-url", d.Uploads.CreateSignedUploadURL)
		pr.Post("/v1/uploads/signed-urls", d.Uploads.CreateSignedUploadURLs)
		pr.Delete("/v1/uploads", d.Uploads.DeleteObject)

		// ===== Organizer routes =====
		pr.Group(func(or chi.Router) {
			or.Use(middleware.RequireOrganizer)

			or.Post("/v1/trips", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())
				var in trip.CreateInput
				if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}
				out, err := d.TripSvc.Create(r.Context(), au.ID, in)
				if err != nil {
					status, msg := mapTripError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 201, "trip created successfully", out)
			})

			or.Put("/v1/trips/{tripId}", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())
				tripID := chi.URLParam(r, "tripId")
				if tripID == "" {
					Fail(w, 400, "missing tripId")
					return
				}
				var in trip.UpdateInput
				if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}
				out, err := d.TripSvc.Update(r.Context(), au.ID, tripID, in)
				if err != nil {
					status, msg := mapTripError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 200, "trip updated successfully", out)
			})

			or.Delete("/v1/trips/{tripId}", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())
				tripID := chi.URLParam(r, "tripId")
				if tripID == "" {
					Fail(w, 400, "missing tripId")
					return
				}
				if err := d.TripSvc.Delete(r.Context(), au.ID, tripID); err != nil {
					status, msg := mapTripError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 200, "trip deleted successfully", nil)
			})

			or.Get("/v1/organizer/trips", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())
				page, limit := parsePageLimit(r)
				out, err := d.Views.ListByOrganizer(r.Context(), au.ID, page, limit)
				if err != nil {
					status, msg := mapTripError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 200, "trips fetched successfully", out)
			})

			or.Post("/v1/joining-requests/{requestId}/decision", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())
				requestID := chi.URLParam(r, "requestId")
				if requestID == "" {
					Fail(w, 400, "missing requestId")
					return
				}
				var body struct {
					Status string `json:"status"`
				}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					Fail(w, 400, "invalid json")
					return
				}
				out, err := d.JoiningSvc.Decide(r.Context(), au.ID, requestID, strings.TrimSpace(body.Status))
				if err != nil {
					status, msg := mapJoiningError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 200, "joining request "+out.Status, out)
			})

			// ===== Destination routes =====
			or.Post("/v1/destinations", func(w http.ResponseWriter, r *http.Request) {
				var in destination.CreateInput
				if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}
				out, err := d.DestinationSvc.Create(r.Context(), in)
				if err != nil {
					status, msg := mapDestinationError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 201, "destination created successfully", out)
			})

			or.Get("/v1/destinations/{destinationId}", func(w http.ResponseWriter, r *http.Request) {
				id := chi.URLParam(r, "destinationId")
				if id == "" {
					Fail(w, 400, "missing destinationId")
					return
				}
				out, err := d.DestinationSvc.Get(r.Context(), id)
				if err != nil {
					status, msg := mapDestinationError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 200, "destination fetched successfully", out)
			})

			or.Put("/v1/destinations/{destinationId}", func(w http.ResponseWriter, r *http.Request) {
				id := chi.URLParam(r, "destinationId")
				if id == "" {
					Fail(w, 400, "missing destinationId")
					return
				}
				var in destination.UpdateInput
				if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}
				out, err := d.DestinationSvc.Update(r.Context(), id, in)
				if err != nil {
					status, msg := mapDestinationError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 200, "destination updated successfully", out)
			})

			or.Delete("/v1/destinations/{destinationId}", func(w http.ResponseWriter, r *http.Request) {
				id := chi.URLParam(r, "destinationId")
				if id == "" {
					Fail(w, 400, "missing destinationId")
					return
				}
				if err := d.DestinationSvc.Delete(r.Context(), id); err != nil {
					status, msg := mapDestinationError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 200, "destination deleted successfully", nil)
			})

			// ===== Document template routes =====
			or.Post("/v1/documents", func(w http.ResponseWriter, r *http.Request) {
				var in document.Input
				if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}
				out, err := d.DocumentSvc.Create(r.Context(), in)
				if err != nil {
					status, msg := mapDocumentError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 201, "document created successfully", out)
			})

			or.Get("/v1/documents/{documentId}", func(w http.ResponseWriter, r *http.Request) {
				id := chi.URLParam(r, "documentId")
				if id == "" {
					Fail(w, 400, "missing documentId")
					return
				}
				out, err := d.DocumentSvc.Get(r.Context(), id)
				if err != nil {
					status, msg := mapDocumentError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 200, "document fetched successfully", out)
			})

			or.Put("/v1/documents/{documentId}", func(w http.ResponseWriter, r *http.Request) {
				id := chi.URLParam(r, "documentId")
				if id == "" {
					Fail(w, 400, "missing documentId")
					return
				}
				var in document.Input
				if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}
				out, err := d.DocumentSvc.Update(r.Context(), id, in)
				if err != nil {
					status, msg := mapDocumentError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 200, "document updated successfully", out)
			})

			or.Delete("/v1/documents/{documentId}", func(w http.ResponseWriter, r *http.Request) {
				id := chi.URLParam(r, "documentId")
				if id == "" {
					Fail(w, 400, "missing documentId")
					return
				}
				if err := d.DocumentSvc.Delete(r.Context(), id); err != nil {
					status, msg := mapDocumentError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 200, "document deleted successfully", nil)
			})
		})

		// ===== Admin routes =====
		pr.Group(func(ar chi.Router) {
			ar.Use(middleware.RequireAdmin)

			ar.Get("/v1/admin/users", func(w http.ResponseWriter, r *http.Request) {
				page, limit := parsePageLimit(r)
				search := strings.TrimSpace(r.URL.Query().Get("search"))
				out, err := d.UserSvc.ListByRoleName(r.Context(), role.User, search, page, limit)
				if err != nil {
					status, msg := mapUserError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 200, "users fetched successfully", out)
			})

			ar.Get("/v1/admin/users/{userId}", func(w http.ResponseWriter, r *http.Request) {
				userID := chi.URLParam(r, "userId")
				if userID == "" {
					Fail(w, 400, "missing userId")
					return
				}
				out, err := d.UserSvc.Get(r.Context(), userID)
				if err != nil {
					status, msg := mapUserError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 200, "user fetched successfully", out)
			})

			ar.Get("/v1/admin/organizers", func(w http.ResponseWriter, r *http.Request) {
				page, limit := parsePageLimit(r)
				search := strings.TrimSpace(r.URL.Query().Get("search"))
				out, err := d.UserSvc.ListByRoleName(r.Context(), role.Organizer, search, page, limit)
				if err != nil {
					status, msg := mapUserError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 200, "organizers fetched successfully", out)
			})

			ar.Get("/v1/admin/organizers/{userId}", func(w http.ResponseWriter, r *http.Request) {
				userID := chi.URLParam(r, "userId")
				if userID == "" {
					Fail(w, 400, "missing userId")
					return
				}
				out, err := d.UserSvc.GetOrganizer(r.Context(), userID)
				if err != nil {
					status, msg := mapUserError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 200, "organizer fetched successfully", out)
			})

			ar.Post("/v1/admin/organizers/{userId}/decision", func(w http.ResponseWriter, r *http.Request) {
				userID := chi.URLParam(r, "userId")
				if userID == "" {
					Fail(w, 400, "missing userId")
					return
				}
				var body struct {
					Approved bool `json:"approved"`
				}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					Fail(w, 400, "invalid json")
					return
				}
				out, err := d.UserSvc.ApproveOrganizer(r.Context(), userID, body.Approved)
				if err != nil {
					status, msg := mapUserError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 200, "organizer decision recorded", out)
			})

			ar.Delete("/v1/admin/users/{userId}", func(w http.ResponseWriter, r *http.Request) {
				userID := chi.URLParam(r, "userId")
				if userID == "" {
					Fail(w, 400, "missing userId")
					return
				}
				out, err := d.UserSvc.SoftDelete(r.Context(), userID)
				if err != nil {
					status, msg := mapUserError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 200, "user deleted successfully", out)
			})

			ar.Get("/v1/admin/counts", func(w http.ResponseWriter, r *http.Request) {
				out, err := d.UserSvc.CountAll(r.Context())
				if err != nil {
					status, msg := mapUserError(err)
					Fail(w, status, msg)
					return
				}
				OK(w, 200, "counts fetched successfully", out)
			})

			ar.Get("/v1/admin/roles", func(w http.ResponseWriter, r *http.Request) {
				out, err := d.RoleRepo.List(r.Context())
				if err != nil {
					Fail(w, 500, err.Error())
					return
				}
				OK(w, 200, "roles fetched successfully", out)
			})

			ar.Post("/v1/admin/roles", func(w http.ResponseWriter, r *http.Request) {
				var body struct {
					RoleName string `json:"roleName"`
				}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					Fail(w, 400, "invalid json")
					return
				}
				name := strings.TrimSpace(body.RoleName)
				if name == "" {
					Fail(w, 400, "roleName is required")
					return
				}
				out, err := d.RoleRepo.Create(r.Context(), name)
				if err != nil {
					Fail(w, 500, err.Error())
					return
				}
				OK(w, 201, "role created successfully", out)
			})
		})
	})

	return r
}

func parsePageLimit(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

func parseTripFilters(r *http.Request) (tripview.Filter, int, int, error) {
	var f tripview.Filter
	q := r.URL.Query()

	if v := q.Get("minPrice"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, 0, 0, errBadQuery("minPrice must be a number")
		}
		f.MinPrice = &min
	}
	if v := q.Get("maxPrice"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, 0, 0, errBadQuery("maxPrice must be a number")
		}
		f.MaxPrice = &max
	}
	f.Duration = strings.TrimSpace(q.Get("tripDuration"))
	f.GroupType = strings.TrimSpace(q.Get("groupType"))
	f.TripType = strings.TrimSpace(q.Get("tripType"))
	f.Search = strings.TrimSpace(q.Get("search"))

	page, limit := parsePageLimit(r)
	return f, page, limit, nil
}

type badQuery string

func (e badQuery) Error() string { return string(e) }

func errBadQuery(msg string) error { return badQuery(msg) }

func mapUserError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case user.IsErrUnauthorized(err):
		return 401, err.Error()
	case user.IsErrNotFound(err):
		return 404, err.Error()
	case user.IsErrDuplicate(err):
		return 409, err.Error()
	case user.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapTripError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case trip.IsErrForbidden(err):
		return 403, err.Error()
	case trip.IsErrNotFound(err):
		return 404, err.Error()
	case trip.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapDestinationError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case destination.IsErrNotFound(err):
		return 404, err.Error()
	case destination.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapDocumentError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case document.IsErrNotFound(err):
		return 404, err.Error()
	case document.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapJoiningError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case joining.IsErrForbidden(err):
		return 403, err.Error()
	case joining.IsErrNotFound(err) || trip.IsErrNotFound(err):
		return 404, err.Error()
	case joining.IsErrDuplicate(err):
		return 409, err.Error()
	case joining.IsErrValidation(err) || joining.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}
