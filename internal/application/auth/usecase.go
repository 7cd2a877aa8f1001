// Package auth implementa el flujo de autenticación en dos pasos: las
// credenciales producen un login pendiente con código 2FA por correo, y el
// código verificado produce una sesión persistida con token JWT. Las sesiones
// expiran a las 8 horas y se refrescan en silencio durante su última hora.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/domain"
	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
	"github.com/waopos/fedo-reportes-api/internal/domain/repository"
	"github.com/waopos/fedo-reportes-api/internal/infrastructure/gateway"
	"github.com/waopos/fedo-reportes-api/pkg/config"
	"github.com/waopos/fedo-reportes-api/pkg/jwt"
	"github.com/waopos/fedo-reportes-api/pkg/logger"
)

var (
	patronEmail  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	patronCodigo = regexp.MustCompile(`^\d{6}$`)
)

// Gateway es el puerto hacia los flujos de autenticación del backend.
type Gateway interface {
	Object(ctx context.Context, table string, data map[string]any) (map[string]any, error)
}

// UseCase orquesta el flujo 2FA y el ciclo de vida de las sesiones.
type UseCase struct {
	gw       Gateway
	sesiones repository.SesionRepository
	cfgJWT   config.JWTConfig
	cfgSes   config.SessionConfig
	log      *logger.Logger
	ahora    func() time.Time // inyectable para tests
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(gw Gateway, sesiones repository.SesionRepository, cfgJWT config.JWTConfig, cfgSes config.SessionConfig, log *logger.Logger) *UseCase {
	return &UseCase{
		gw:       gw,
		sesiones: sesiones,
		cfgJWT:   cfgJWT,
		cfgSes:   cfgSes,
		log:      log,
		ahora:    time.Now,
	}
}

// Login valida las credenciales contra el backend y deja un login pendiente
// con su código 2FA enviado por correo.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if !patronEmail.MatchString(req.Email) {
		return nil, fmt.Errorf("email: %w", domain.ErrInvalidInput)
	}
	if len(req.Password) < 8 || len(req.Password) > 15 {
		return nil, fmt.Errorf("la contraseña debe tener entre 8 y 15 caracteres: %w", domain.ErrInvalidInput)
	}
	if req.Captcha == "" {
		return nil, fmt.Errorf("captcha requerido: %w", domain.ErrInvalidInput)
	}

	token, err := uc.solicitarCodigo(ctx, map[string]any{
		"email":    req.Email,
		"password": req.Password,
	})
	if err != nil {
		return nil, err
	}
	return uc.guardarPendiente(ctx, req.Email, token)
}

// Reenviar emite un código 2FA nuevo para un login pendiente existente, sin
// pedir credenciales de nuevo. El pendiente anterior se reemplaza.
func (uc *UseCase) Reenviar(ctx context.Context, req dto.ReenviarRequest) (*dto.LoginResponse, error) {
	pendiente, err := uc.sesiones.ObtenerPendiente(ctx, req.PendienteID)
	if err != nil {
		return nil, err
	}

	token, err := uc.solicitarCodigo(ctx, map[string]any{"email": pendiente.Email})
	if err != nil {
		return nil, err
	}
	if err := uc.sesiones.EliminarPendiente(ctx, pendiente.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return uc.guardarPendiente(ctx, pendiente.Email, token)
}

// solicitarCodigo llama al flujo Solicitar2FA y extrae el token de sesión del
// backend. Conviven dos formatos de respuesta: el nuevo entrega session_token
// directo y el legado lo envuelve en {success, sessionToken}.
func (uc *UseCase) solicitarCodigo(ctx context.Context, data map[string]any) (string, error) {
	resp, err := uc.gw.Object(ctx, gateway.TablaSolicitar2FA, data)
	if err != nil {
		return "", err
	}
	if token, ok := resp["session_token"].(string); ok && token != "" {
		return token, nil
	}
	if exito, ok := resp["success"].(bool); ok && exito {
		if token, ok := resp["sessionToken"].(string); ok && token != "" {
			return token, nil
		}
	}
	if mensaje, ok := resp["message"].(string); ok && mensaje != "" {
		return "", fmt.Errorf("%s: %w", mensaje, domain.ErrUnauthorized)
	}
	return "", fmt.Errorf("credenciales rechazadas: %w", domain.ErrUnauthorized)
}

func (uc *UseCase) guardarPendiente(ctx context.Context, email, token string) (*dto.LoginResponse, error) {
	ahora := uc.ahora()
	pendiente := &entity.LoginPendiente{
		ID:                uuid.NewString(),
		Email:             email,
		TokenSesion:       token,
		IntentosRestantes: uc.cfgSes.OTPAttempts,
		ExpiraEn:          ahora.Add(uc.cfgSes.OTPTTL),
		CreadoEn:          ahora,
	}
	if err := uc.sesiones.GuardarPendiente(ctx, pendiente); err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		PendienteID:       pendiente.ID,
		SegundosRestantes: int(uc.cfgSes.OTPTTL.Seconds()),
		Intentos:          pendiente.IntentosRestantes,
	}, nil
}

// Verificar valida el código 2FA contra el backend. Un código correcto
// persiste la sesión y emite el JWT; uno incorrecto descuenta un intento.
// El pendiente vencido o sin intentos obliga a reenviar el código.
func (uc *UseCase) Verificar(ctx context.Context, req dto.VerificarRequest) (*dto.VerificarResponse, error) {
	if !patronCodigo.MatchString(req.Codigo) {
		return nil, fmt.Errorf("el código debe tener 6 dígitos: %w", domain.ErrInvalidInput)
	}

	pendiente, err := uc.sesiones.ObtenerPendiente(ctx, req.PendienteID)
	if err != nil {
		return nil, err
	}
	ahora := uc.ahora()
	if pendiente.Expirado(ahora) {
		if err := uc.sesiones.EliminarPendiente(ctx, pendiente.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			uc.log.Warn().Err(err).Msg("auth: limpiar pendiente expirado")
		}
		return nil, domain.ErrOTPExpired
	}
	if pendiente.IntentosRestantes <= 0 {
		return nil, domain.ErrOTPAttemptsExceeded
	}

	resp, err := uc.gw.Object(ctx, gateway.TablaCodigo, map[string]any{
		"session_token": pendiente.TokenSesion,
		"code":          req.Codigo,
	})
	if err != nil {
		return nil, err
	}

	if exito, _ := resp["success"].(bool); exito {
		return uc.emitirSesion(ctx, pendiente, resp)
	}

	codigo, _ := resp["error"].(string)
	switch codigo {
	case "MAX_INTENTOS_EXCEDIDO":
		if err := uc.sesiones.ActualizarIntentos(ctx, pendiente.ID, 0); err != nil {
			return nil, err
		}
		return nil, domain.ErrOTPAttemptsExceeded
	default:
		restantes := pendiente.IntentosRestantes - 1
		if r, ok := resp["intentosRestantes"].(float64); ok {
			restantes = int(r)
		}
		if restantes < 0 {
			restantes = 0
		}
		if err := uc.sesiones.ActualizarIntentos(ctx, pendiente.ID, restantes); err != nil {
			return nil, err
		}
		if restantes == 0 {
			return nil, domain.ErrOTPAttemptsExceeded
		}
		return nil, fmt.Errorf("quedan %d intentos: %w", restantes, domain.ErrOTPIncorrect)
	}
}

// emitirSesion persiste la sesión nueva, limpia el pendiente y firma el JWT.
func (uc *UseCase) emitirSesion(ctx context.Context, pendiente *entity.LoginPendiente, resp map[string]any) (*dto.VerificarResponse, error) {
	perfil := perfilDeRespuesta(pendiente.Email, resp)

	sesion := &entity.Sesion{
		ID:       uuid.NewString(),
		Email:    perfil.Email,
		Perfil:   perfil,
		CreadaEn: uc.ahora(),
	}
	if err := uc.sesiones.GuardarSesion(ctx, sesion); err != nil {
		return nil, err
	}
	if err := uc.sesiones.EliminarPendiente(ctx, pendiente.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		uc.log.Warn().Err(err).Msg("auth: limpiar pendiente verificado")
	}

	token, err := jwt.Generate(uc.cfgJWT.Secret, sesion.ID, perfil.MiembroID, perfil.Email, uc.cfgJWT.Issuer, uc.cfgSes.TTL)
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("email", perfil.Email).Msg("sesión iniciada")
	return &dto.VerificarResponse{
		Token: token,
		Usuario: dto.PerfilDTO{
			MiembroID: perfil.MiembroID,
			Nombre:    perfil.Nombre,
			Email:     perfil.Email,
			Celular:   perfil.Celular,
			Cedula:    perfil.Cedula,
			IDClickup: perfil.IDClickup,
		},
	}, nil
}

// perfilDeRespuesta extrae la instantánea de perfil del userInfo del backend.
// Si el flujo no la trae, la sesión queda con el email como único dato.
func perfilDeRespuesta(email string, resp map[string]any) entity.PerfilUsuario {
	perfil := entity.PerfilUsuario{Email: email}
	info, ok := resp["userInfo"].(map[string]any)
	if !ok {
		return perfil
	}
	campo := func(clave string) string {
		s, _ := info[clave].(string)
		return s
	}
	if v := campo("email"); v != "" {
		perfil.Email = v
	}
	perfil.MiembroID = campo("miembroID")
	perfil.Nombre = campo("nombre")
	perfil.Celular = campo("celular")
	perfil.IDClickup = campo("id_clickup")
	perfil.Cedula = campo("cedula")
	perfil.FechaCreacion = campo("fecha_creacion")
	perfil.FechaModificacion = campo("fecha_modificacion")
	return perfil
}

// ValidarSesion resuelve la sesión referida por el JWT. Una sesión vencida se
// elimina y la petición falla; una sesión en su última hora de vida se
// refresca en silencio.
func (uc *UseCase) ValidarSesion(ctx context.Context, sessionID string) (*entity.Sesion, error) {
	sesion, err := uc.sesiones.ObtenerSesion(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSessionExpired
		}
		return nil, err
	}

	ahora := uc.ahora()
	if sesion.Expirada(ahora, uc.cfgSes.TTL) {
		if err := uc.sesiones.EliminarSesion(ctx, sesion.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			uc.log.Warn().Err(err).Msg("auth: limpiar sesión expirada")
		}
		return nil, domain.ErrSessionExpired
	}
	if sesion.NecesitaRefresco(ahora, uc.cfgSes.RefreshAt) {
		if err := uc.sesiones.RefrescarSesion(ctx, sesion.ID, ahora); err != nil {
			uc.log.Warn().Err(err).Msg("auth: refrescar sesión")
		} else {
			sesion.CreadaEn = ahora
		}
	}
	return sesion, nil
}

// Logout elimina la sesión. Cerrar una sesión ya inexistente no es error.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	err := uc.sesiones.EliminarSesion(ctx, sessionID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}
