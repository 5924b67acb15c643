package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	echoapi "github.com/darasahq/darasa/apps/api/echo"
	"github.com/darasahq/darasa/core/user"
	emailsvc "github.com/darasahq/darasa/services/email"
	testutil "github.com/darasahq/darasa/tests"
)

func Test_authApi_register(t *testing.T) {
	app := setup(t)

	existing := testutil.CreateStudent(t, usrRepo, "Taken Already", "taken@test.cd", "", "5", "B", "UNI-001")

	reqMsg := "this field is required"
	newStudent := user.NewUser{
		Role:         user.RoleStudent,
		FullName:     "Jane Hero",
		Email:        "jane@test.cd",
		Password:     "s3cretSauce!",
		Semester:     "5",
		Section:      "B",
		UniversityID: "UNI-002",
	}

	type extraTest struct {
		emailSent bool
		to        mail.Address
	}
	tests := []httpTest{
		{
			name: "required fields", body: []byte("{}"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, fieldErrs{Error: map[string]string{
				"role":      reqMsg,
				"full_name": reqMsg,
				"email":     reqMsg,
				"password":  "password must contain at least 8 characters",
			}}),
		},
		{
			name:     "unknown role",
			body:     marchallObj(t, user.NewUser{Role: "admin", FullName: "Lol Cat", Email: "lol@test.cd", Password: "s3cretSauce!"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, fieldErrs{Error: map[string]string{"role": "role must be one of: student, teacher"}}),
		},
		{
			name:     "invalid email",
			body:     marchallObj(t, user.NewUser{Role: user.RoleTeacher, FullName: "Lol Cat", Email: "lol", Password: "s3cretSauce!", TeacherID: "T-1"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, fieldErrs{Error: map[string]string{"email": "email must be a valid email address"}}),
		},
		{
			name:     "student fields required",
			body:     marchallObj(t, user.NewUser{Role: user.RoleStudent, FullName: "Lol Cat", Email: "lol@test.cd", Password: "s3cretSauce!"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, fieldErrs{Error: map[string]string{"semester": reqMsg, "section": reqMsg, "university_id": reqMsg}}),
		},
		{
			name:     "teacher id required",
			body:     marchallObj(t, user.NewUser{Role: user.RoleTeacher, FullName: "Lol Cat", Email: "lol@test.cd", Password: "s3cretSauce!"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, fieldErrs{Error: map[string]string{"teacher_id": reqMsg}}),
		},
		{
			name:     "password similar to email",
			body:     marchallObj(t, user.NewUser{Role: user.RoleTeacher, FullName: "Lol Cat", Email: "lol@test.cd", Password: "lol@test.cd", TeacherID: "T-1"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, fieldErrs{Error: map[string]string{"password": "password cannot be similar to user attributes"}}),
		},
		{
			name: "duplicate email",
			body: marchallObj(t, user.NewUser{
				Role: user.RoleStudent, FullName: "Copy Cat", Email: existing.Email, Password: "s3cretSauce!",
				Semester: "5", Section: "B", UniversityID: "UNI-009",
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, fieldErrs{Error: map[string]string{"email": "a user with this email already exists"}}),
		},
		{
			name: "duplicate university id",
			body: marchallObj(t, user.NewUser{
				Role: user.RoleStudent, FullName: "Copy Cat", Email: "copy@test.cd", Password: "s3cretSauce!",
				Semester: "5", Section: "B", UniversityID: existing.UniversityID,
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, fieldErrs{Error: map[string]string{"university_id": "a student with this university id already exists"}}),
		},
		{
			name: "student registered", body: marchallObj(t, newStudent), wantCode: http.StatusCreated,
			extra: extraTest{emailSent: true, to: mail.Address{Name: newStudent.FullName, Address: newStudent.Email}},
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/api/auth/register"

		t.Run(tt.name, func(t *testing.T) {
			emailsvc.SentMessages = nil // reset

			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var respData echoapi.RegisterResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if respData.UserID == "" {
					t.Error("failed! empty user_id")
				}
				if respData.Email != newStudent.Email || respData.Role != newStudent.Role {
					t.Errorf("failed! resp = %+v", respData)
				}

				extra := tt.extra.(extraTest)
				if len(emailsvc.SentMessages) != 1 {
					t.Fatalf("failed! len(SentMessages) = %d; want 1", len(emailsvc.SentMessages))
				}
				msg := emailsvc.SentMessages[0]
				if msg.To[0] != extra.to {
					t.Errorf("failed! To = %v; want %v", msg.To[0], extra.to)
				}
				if !strings.Contains(msg.TextContent, extra.to.Name) {
					t.Errorf("failed! text content does not contain recipient's name %q", extra.to.Name)
				}
				if !strings.Contains(msg.HTMLContent, extra.to.Name) {
					t.Errorf("failed! HTML content does not contain recipient's name %q", extra.to.Name)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_login(t *testing.T) {
	app := setup(t)

	teacher := testutil.CreateUser(t, usrRepo, "Prof X", "profx@test.cd", "s3cretSauce!", user.RoleTeacher)

	reqMsg := "this field is required"
	tests := []httpTest{
		{
			name: "required fields", body: []byte("{}"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, fieldErrs{Error: map[string]string{"email": reqMsg, "password": reqMsg}}),
		},
		{
			name: "unknown email", body: marchallObj(t, echoapi.LoginRequest{Email: "lol@test.cd", Password: "s3cretSauce!"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "invalid credentials"}),
		},
		{
			name: "wrong password", body: marchallObj(t, echoapi.LoginRequest{Email: teacher.Email, Password: "lol"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "invalid credentials"}),
		},
		{
			name: "logged in", body: marchallObj(t, echoapi.LoginRequest{Email: teacher.Email, Password: "s3cretSauce!"}),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/api/auth/login"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusOK {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var respData echoapi.LoginResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if respData.Token == "" {
					t.Error("failed! empty token")
				}
				if respData.Role != user.RoleTeacher {
					t.Errorf("failed! role = %s; want %s", respData.Role, user.RoleTeacher)
				}

				refreshed, err := usrRepo.GetUserByID(context.Background(), teacher.ID)
				if err != nil {
					t.Fatalf("GetUserByID() failed: %v", err)
				}
				if refreshed.LastLogin.IsZero() {
					t.Error("failed! lastLogin not set")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_retrieve(t *testing.T) {
	app := setup(t)

	student := testutil.CreateStudent(t, usrRepo, "Jane Hero", "jane@test.cd", "", "5", "B", "UNI-002")

	past := time.Now().Add(-time.Hour)
	expiredClaims := &echoapi.Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   student.ID,
			ExpiresAt: past.Unix(),
			IssuedAt:  past.Add(-conf.Server.JWTExpirationDelta).Unix(),
		},
		OrigIssuedAt: past.Add(-conf.Server.JWTExpirationDelta).Unix(),
		Email:        student.Email,
		FullName:     student.FullName,
		Role:         student.Role,
	}
	expiredToken, err := echoapi.GenerateToken(expiredClaims)
	if err != nil {
		t.Fatalf("GenerateToken(): %v", err)
	}

	// flip the signature's last byte
	tamperedToken := getToken(t, student)
	last := "A"
	if strings.HasSuffix(tamperedToken, last) {
		last = "B"
	}
	tamperedToken = tamperedToken[:len(tamperedToken)-1] + last

	errInvalidToken := httpErr{Error: "invalid or expired jwt"}
	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Expired token", token: expiredToken, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errInvalidToken)},
		{name: "Tampered token", token: tamperedToken, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errInvalidToken)},
		{name: "Profile returned", token: getToken(t, student), wantCode: http.StatusOK, wantData: marchallObj(t, student)},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/api/auth/user"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_refreshToken(t *testing.T) {
	app := setup(t)

	student := testutil.CreateStudent(t, usrRepo, "Jane Hero", "jane@test.cd", "", "5", "B", "UNI-002")

	now := time.Now()
	unrefreshableClaims := &echoapi.Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   student.ID,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		OrigIssuedAt: now.Add(-2 * conf.Server.JWTRefreshExpirationDelta).Unix(), // older than threshold
		Email:        student.Email,
		FullName:     student.FullName,
		Role:         student.Role,
	}
	unrefreshableToken, err := echoapi.GenerateToken(unrefreshableClaims)
	if err != nil {
		t.Fatalf("GenerateToken(): %v", err)
	}

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Refresh period expired", token: unrefreshableToken, wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "refresh has expired"})},
		{name: "Token refreshed", token: getToken(t, student), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/api/auth/token-refresh"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			// cannot guess new token.. just check that it's not empty
			if tt.wantCode == http.StatusOK {
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var respData echoapi.TokenResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Errorf("json.Unmarshal() failed! err %v", err)
				}
				if respData.Token == "" {
					t.Error("failed! empty token")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_queryStudents(t *testing.T) {
	app := setup(t)

	teacher := testutil.CreateUser(t, usrRepo, "Prof X", "profx@test.cd", "", user.RoleTeacher)
	s1 := testutil.CreateStudent(t, usrRepo, "Alice Apple", "alice@test.cd", "", "5", "B", "UNI-001")
	s2 := testutil.CreateStudent(t, usrRepo, "Zora Zebra", "zora@test.cd", "", "3", "A", "UNI-002")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Teacher required", token: getToken(t, s1), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "Get all students", token: getToken(t, teacher), wantCode: http.StatusOK, wantData: marchallList(t, s1, s2)},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/api/users/students"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
