package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"

	"ecmis-core/internal/infrastructure/database/migrations"
	"ecmis-core/internal/infrastructure/database/seeds"
)

// BootstrapSystem orchestre le processus de démarrage automatique
// 3 phases séquentielles : extensions → migrations → seeding
type BootstrapSystem struct {
	extensionManager *ExtensionManager
	migrationRunner  *migrations.Runner
	seedingService   seeds.SeedingService
	timeout          time.Duration
}

// BootstrapResult contient le résultat d'exécution du bootstrap
type BootstrapResult struct {
	Success        bool          `json:"success"`
	TotalDuration  time.Duration `json:"total_duration"`
	PhasesExecuted []PhaseResult `json:"phases_executed"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// PhaseResult contient le résultat d'une phase du bootstrap
type PhaseResult struct {
	Phase       string        `json:"phase"`
	Success     bool          `json:"success"`
	Duration    time.Duration `json:"duration"`
	Description string        `json:"description"`
	Error       string        `json:"error,omitempty"`
}

// NewBootstrapSystem crée une nouvelle instance du système de bootstrap
func NewBootstrapSystem(
	extensionManager *ExtensionManager,
	migrationRunner *migrations.Runner,
	seedingService seeds.SeedingService,
) *BootstrapSystem {
	return &BootstrapSystem{
		extensionManager: extensionManager,
		migrationRunner:  migrationRunner,
		seedingService:   seedingService,
		timeout:          5 * time.Minute,
	}
}

// Execute lance le processus de bootstrap complet avec les 3 phases
func (bs *BootstrapSystem) Execute() (*BootstrapResult, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), bs.timeout)
	defer cancel()

	fmt.Printf("[BOOTSTRAP] Démarrage BootstrapSystem (timeout: %v)\n", bs.timeout)

	result := &BootstrapResult{
		Success:        true,
		PhasesExecuted: []PhaseResult{},
	}

	phases := []struct {
		name string
		run  func(context.Context) PhaseResult
	}{
		{"Phase 0", bs.executeExtensions},
		{"Phase 1", bs.executeMigrations},
		{"Phase 2", bs.executeSeeding},
	}

	for _, phase := range phases {
		phaseResult := phase.run(ctx)
		result.PhasesExecuted = append(result.PhasesExecuted, phaseResult)
		if !phaseResult.Success {
			result.Success = false
			result.ErrorMessage = fmt.Sprintf("%s échouée: %s", phase.name, phaseResult.Error)
			result.TotalDuration = time.Since(startTime)
			return result, fmt.Errorf("bootstrap failed at %s: %s", phase.name, phaseResult.Error)
		}
	}

	result.TotalDuration = time.Since(startTime)
	fmt.Printf("[BOOTSTRAP] ✅ BootstrapSystem terminé avec succès en %v\n", result.TotalDuration)
	fmt.Printf("[BOOTSTRAP] 🎯 Application prête pour démarrage serveur HTTP\n")

	return result, nil
}

// executeExtensions exécute la Phase 0: Extensions PostgreSQL
func (bs *BootstrapSystem) executeExtensions(ctx context.Context) PhaseResult {
	startTime := time.Now()
	phase := "Phase 0: Extensions PostgreSQL"

	fmt.Printf("[BOOTSTRAP] 🔧 Démarrage %s\n", phase)

	err := bs.extensionManager.EnsureRequiredExtensions(ctx)
	duration := time.Since(startTime)

	if err != nil {
		fmt.Printf("[BOOTSTRAP] ❌ %s échouée en %v: %v\n", phase, duration, err)
		return PhaseResult{
			Phase:       phase,
			Success:     false,
			Duration:    duration,
			Description: "Création extensions uuid-ossp et pg_trgm",
			Error:       err.Error(),
		}
	}

	fmt.Printf("[BOOTSTRAP] ✅ %s terminée en %v\n", phase, duration)
	return PhaseResult{
		Phase:       phase,
		Success:     true,
		Duration:    duration,
		Description: "Extensions PostgreSQL créées avec succès",
	}
}

// executeMigrations exécute la Phase 1: Migrations SQL embarquées
func (bs *BootstrapSystem) executeMigrations(ctx context.Context) PhaseResult {
	startTime := time.Now()
	phase := "Phase 1: Migrations SQL"

	fmt.Printf("[BOOTSTRAP] 🗄️  Démarrage %s\n", phase)

	status, err := bs.migrationRunner.Apply(ctx)
	duration := time.Since(startTime)

	if err != nil {
		fmt.Printf("[BOOTSTRAP] ❌ %s échouée en %v: %v\n", phase, duration, err)
		return PhaseResult{
			Phase:       phase,
			Success:     false,
			Duration:    duration,
			Description: "Application migrations embarquées",
			Error:       err.Error(),
		}
	}

	fmt.Printf("[BOOTSTRAP] ✅ %s terminée en %v (%d migration(s) en place)\n",
		phase, duration, len(status.Applied))
	return PhaseResult{
		Phase:       phase,
		Success:     true,
		Duration:    duration,
		Description: fmt.Sprintf("%d migration(s) en place", len(status.Applied)),
	}
}

// executeSeeding exécute la Phase 2: Seeding données de référence
func (bs *BootstrapSystem) executeSeeding(ctx context.Context) PhaseResult {
	startTime := time.Now()
	phase := "Phase 2: Seeding données"

	fmt.Printf("[BOOTSTRAP] 🌱 Démarrage %s\n", phase)

	status, err := bs.seedingService.CheckSeedDataExists(ctx)
	if err != nil {
		duration := time.Since(startTime)
		fmt.Printf("[BOOTSTRAP] ❌ %s - Erreur vérification données en %v: %v\n", phase, duration, err)
		return PhaseResult{
			Phase:       phase,
			Success:     false,
			Duration:    duration,
			Description: "Vérification données existantes",
			Error:       fmt.Sprintf("data check failed: %v", err),
		}
	}

	if status.IsComplete() {
		duration := time.Since(startTime)
		fmt.Printf("[BOOTSTRAP] ✅ %s - données déjà présentes (%v)\n", phase, duration)
		return PhaseResult{
			Phase:       phase,
			Success:     true,
			Duration:    duration,
			Description: "Données de référence déjà présentes",
		}
	}

	fmt.Printf("[BOOTSTRAP] Seeds manquants: %v\n", status.GetMissingSeeds())

	err = bs.seedingService.SeedReferenceData(ctx)
	duration := time.Since(startTime)

	if err != nil {
		fmt.Printf("[BOOTSTRAP] ❌ %s échouée en %v: %v\n", phase, duration, err)
		return PhaseResult{
			Phase:       phase,
			Success:     false,
			Duration:    duration,
			Description: "Application seeding données",
			Error:       err.Error(),
		}
	}

	fmt.Printf("[BOOTSTRAP] ✅ %s terminée en %v\n", phase, duration)
	return PhaseResult{
		Phase:       phase,
		Success:     true,
		Duration:    duration,
		Description: "Données de référence (cliniques + tarifs) créées avec succès",
	}
}

// RegisterBootstrapLifecycle enregistre le système de bootstrap dans le cycle de vie Fx
func RegisterBootstrapLifecycle(
	lc fx.Lifecycle,
	bootstrap *BootstrapSystem,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			fmt.Printf("[LIFECYCLE] 🚀 Démarrage BootstrapSystem AVANT serveur HTTP\n")

			result, err := bootstrap.Execute()
			if err != nil {
				fmt.Printf("[LIFECYCLE] ❌ Bootstrap échoué: %v\n", err)
				return fmt.Errorf("bootstrap system failed: %w", err)
			}

			fmt.Printf("[LIFECYCLE] ✅ Bootstrap terminé en %v\n", result.TotalDuration)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return nil
		},
	})
}
