package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	goredis "github.com/redis/go-redis/v9"

	"ecmis-core/internal/infrastructure/database/postgres"
	"ecmis-core/internal/infrastructure/database/redis"
	"ecmis-core/internal/modules/core-services/patient/dto"
	"ecmis-core/internal/modules/core-services/patient/queries"
)

// PatientCodeGeneratorService gère la génération atomique des codes patient uniques
type PatientCodeGeneratorService struct {
	db        *postgres.Client
	txManager *postgres.TransactionManager
	redis     *redis.Client
	mu        sync.Map // Lock en mémoire par clinique pour éviter concurrence locale
}

// NewPatientCodeGeneratorService crée une nouvelle instance du service
func NewPatientCodeGeneratorService(db *postgres.Client, redisClient *redis.Client) *PatientCodeGeneratorService {
	return &PatientCodeGeneratorService{
		db:        db,
		txManager: postgres.NewTransactionManager(db),
		redis:     redisClient,
		mu:        sync.Map{},
	}
}

// GeneratePatientCode génère un code patient unique atomiquement
// Format: {CLINIQUE}-{YYYY}-{NNN}-{LLL}
// Exemple: CENTREA-2025-001-AAA
func (s *PatientCodeGeneratorService) GeneratePatientCode(
	ctx context.Context,
	cliniqueCode string,
) (*dto.CodeGenerationResponse, error) {
	startTime := time.Now()
	year := time.Now().Year()

	if err := s.validateCliniqueCode(cliniqueCode); err != nil {
		return nil, err
	}

	// 1. Tentative rapide via Redis (cas nominal)
	if response, err := s.generateFromRedis(ctx, cliniqueCode, year); err == nil {
		response.GenerationTimeMs = int(time.Since(startTime).Milliseconds())
		return response, nil
	}

	// 2. Fallback PostgreSQL si Redis indisponible ou première génération
	return s.generateFromPostgres(ctx, cliniqueCode, year, startTime)
}

// generateFromRedis - Génération rapide via Redis avec lock distribué
func (s *PatientCodeGeneratorService) generateFromRedis(
	ctx context.Context,
	cliniqueCode string,
	year int,
) (*dto.CodeGenerationResponse, error) {
	redisKey := s.redis.Keys().PatientSequenceKey(cliniqueCode, year)
	lockKey := s.redis.Keys().PatientSequenceLockKey(cliniqueCode, year)

	// Acquérir un lock Redis (protection concurrence inter-instances)
	locked, err := s.redis.SetNX(ctx, lockKey, "1", 5*time.Second)
	if err != nil || !locked {
		return nil, fmt.Errorf("unable to acquire Redis lock: %w", err)
	}
	defer s.redis.Del(ctx, lockKey)

	// Récupérer la séquence actuelle
	current, err := s.redis.Get(ctx, redisKey)
	if errors.Is(err, goredis.Nil) {
		// Première génération de l'année - initialiser depuis PostgreSQL
		return s.initializeRedisFromDB(ctx, cliniqueCode, year)
	}
	if err != nil {
		return nil, fmt.Errorf("Redis get failed: %w", err)
	}

	// Parser et incrémenter
	var numero int
	var suffixe string
	if _, scanErr := fmt.Sscanf(current, "%d:%s", &numero, &suffixe); scanErr != nil {
		return nil, fmt.Errorf("invalid Redis sequence format: %w", scanErr)
	}

	numero, suffixe, err = s.incrementSequence(numero, suffixe)
	if err != nil {
		return nil, err
	}

	// Sauvegarder la nouvelle séquence
	newValue := fmt.Sprintf("%d:%s", numero, suffixe)
	ttl := s.calculateTTLUntilYearEnd()
	if err := s.redis.Set(ctx, redisKey, newValue, ttl); err != nil {
		return nil, fmt.Errorf("Redis set failed: %w", err)
	}

	// Mise à jour asynchrone PostgreSQL (fire-and-forget)
	go s.updatePostgresAsync(cliniqueCode, year, numero, suffixe)

	codePatient := fmt.Sprintf("%s-%d-%03d-%s", cliniqueCode, year, numero, suffixe)

	return &dto.CodeGenerationResponse{
		CodePatient:  codePatient,
		CliniqueCode: cliniqueCode,
		Annee:        year,
		Numero:       numero,
		Suffixe:      suffixe,
		GeneratedAt:  time.Now(),
		Source:       "redis",
	}, nil
}

// generateFromPostgres - Génération avec PostgreSQL (fallback robuste)
func (s *PatientCodeGeneratorService) generateFromPostgres(
	ctx context.Context,
	cliniqueCode string,
	year int,
	startTime time.Time,
) (*dto.CodeGenerationResponse, error) {
	// Lock en mémoire pour éviter la concurrence locale
	lockKey := fmt.Sprintf("%s-%d", cliniqueCode, year)
	lockValue, _ := s.mu.LoadOrStore(lockKey, &sync.Mutex{})
	mutex := lockValue.(*sync.Mutex)
	mutex.Lock()
	defer mutex.Unlock()

	var numero int
	var suffixe string
	var nombreGeneres int64

	// Transaction Serializable : UPSERT atomique
	err := s.txManager.WithTransactionIsolation(ctx, pgx.Serializable, func(tx *postgres.Transaction) error {
		return tx.QueryRow(ctx,
			queries.PatientCodeGenerationQueries.GenerateNextCodeFromPostgres,
			cliniqueCode,
			year,
		).Scan(&numero, &suffixe, &nombreGeneres)
	})

	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	// Synchroniser Redis pour les futures générations
	s.syncRedisFromPostgres(ctx, cliniqueCode, year, numero, suffixe)

	codePatient := fmt.Sprintf("%s-%d-%03d-%s", cliniqueCode, year, numero, suffixe)

	return &dto.CodeGenerationResponse{
		CodePatient:      codePatient,
		CliniqueCode:     cliniqueCode,
		Annee:            year,
		Numero:           numero,
		Suffixe:          suffixe,
		NombreGeneres:    nombreGeneres,
		GeneratedAt:      time.Now(),
		Source:           "postgres",
		GenerationTimeMs: int(time.Since(startTime).Milliseconds()),
	}, nil
}

// incrementSequence - Logique d'incrémentation numéro/suffixe
func (s *PatientCodeGeneratorService) incrementSequence(numero int, suffixe string) (int, string, error) {
	numero++
	if numero > 999 {
		numero = 1
		newSuffixe, err := s.nextSuffix(suffixe)
		if err != nil {
			return 0, "", err
		}
		suffixe = newSuffixe
	}
	return numero, suffixe, nil
}

// nextSuffix - Calcul du suffixe suivant (AAA → AAB → ... → ZZZ)
func (s *PatientCodeGeneratorService) nextSuffix(current string) (string, error) {
	if current == "ZZZ" {
		return "", dto.NewCodeGenerationError(
			dto.ErrCodeCapaciteMaximale,
			"Capacité maximale atteinte pour l'année",
			"",
			time.Now().Year(),
		)
	}

	chars := []byte(strings.ToUpper(current))
	for i := 2; i >= 0; i-- {
		if chars[i] < 'Z' {
			chars[i]++
			break
		}
		chars[i] = 'A'
	}
	return string(chars), nil
}

// initializeRedisFromDB - Initialise Redis depuis PostgreSQL pour première génération
func (s *PatientCodeGeneratorService) initializeRedisFromDB(
	ctx context.Context,
	cliniqueCode string,
	year int,
) (*dto.CodeGenerationResponse, error) {
	var numero int
	var suffixe string
	var nombreGeneres int64

	err := s.db.QueryRow(ctx,
		queries.PatientCodeGenerationQueries.GetSequenceState,
		cliniqueCode,
		year,
	).Scan(&numero, &suffixe, &nombreGeneres)

	if errors.Is(err, pgx.ErrNoRows) {
		// Première génération absolue - fallback PostgreSQL
		return s.generateFromPostgres(ctx, cliniqueCode, year, time.Now())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sequence state: %w", err)
	}

	redisKey := s.redis.Keys().PatientSequenceKey(cliniqueCode, year)
	redisValue := fmt.Sprintf("%d:%s", numero, suffixe)
	ttl := s.calculateTTLUntilYearEnd()

	if err := s.redis.Set(ctx, redisKey, redisValue, ttl); err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	return s.generateFromRedis(ctx, cliniqueCode, year)
}

// syncRedisFromPostgres - Synchronise Redis avec l'état PostgreSQL (best effort)
func (s *PatientCodeGeneratorService) syncRedisFromPostgres(
	ctx context.Context,
	cliniqueCode string,
	year int,
	numero int,
	suffixe string,
) {
	redisKey := s.redis.Keys().PatientSequenceKey(cliniqueCode, year)
	redisValue := fmt.Sprintf("%d:%s", numero, suffixe)
	ttl := s.calculateTTLUntilYearEnd()

	s.redis.Set(ctx, redisKey, redisValue, ttl)
}

// updatePostgresAsync - Mise à jour asynchrone PostgreSQL depuis Redis (best effort)
func (s *PatientCodeGeneratorService) updatePostgresAsync(
	cliniqueCode string,
	year int,
	numero int,
	suffixe string,
) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.db.Exec(ctx,
		queries.PatientCodeGenerationQueries.UpdateSequenceAfterGeneration,
		cliniqueCode,
		year,
		numero,
		suffixe,
	)
}

// calculateTTLUntilYearEnd - TTL jusqu'au 31 décembre 23:59:59
func (s *PatientCodeGeneratorService) calculateTTLUntilYearEnd() time.Duration {
	now := time.Now()
	endOfYear := time.Date(now.Year(), 12, 31, 23, 59, 59, 0, now.Location())
	return endOfYear.Sub(now)
}

// validateCliniqueCode - Validation du code clinique
func (s *PatientCodeGeneratorService) validateCliniqueCode(code string) error {
	if len(strings.TrimSpace(code)) == 0 {
		return dto.NewCodeGenerationError(
			dto.ErrCodeCliniqueInvalide,
			"Code clinique requis",
			code,
			0,
		)
	}
	if len(code) > 20 {
		return dto.NewCodeGenerationError(
			dto.ErrCodeCliniqueInvalide,
			"Code clinique trop long (max 20 caractères)",
			code,
			0,
		)
	}
	return nil
}
