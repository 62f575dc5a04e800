package eln

// Service is the orchestration layer that coordinates the database, the
// attachment store, the backup vault, and the encryptor to perform the
// high-level operations needed by the CLI.
type Service struct {
	database    Database
	attachments AttachmentStore
	vault       Vault
	encryptor   Encryptor
	logger      Logger
	clock       Clock
	idgen       IDGenerator
}

// NewService creates a Service with the provided dependencies. vault and
// encryptor may be nil for callers that never back up or encrypt.
func NewService(database Database, attachments AttachmentStore, vault Vault, encryptor Encryptor, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		database:    database,
		attachments: attachments,
		vault:       vault,
		encryptor:   encryptor,
		logger:      logger,
		clock:       clock,
		idgen:       idgen,
	}
}

// Database exposes the underlying database, primarily for the application
// layer's audit hook.
func (s *Service) Database() Database { return s.database }
