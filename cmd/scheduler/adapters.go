package main

import (
	"context"
	"errors"
	"time"

	"github.com/example/placement-scheduler/internal/application"
	"github.com/example/placement-scheduler/internal/persistence"
	"github.com/example/placement-scheduler/internal/persistence/sqlite"
)

// The auth service compares against application sentinels, so the adapters on
// its path translate persistence.ErrNotFound before returning.
func mapSessionErr(err error) error {
	if errors.Is(err, persistence.ErrNotFound) {
		return application.ErrNotFound
	}
	return err
}

type credentialStoreAdapter struct {
	repo *sqlite.OperatorRepository
}

func newCredentialStoreAdapter(repo *sqlite.OperatorRepository) *credentialStoreAdapter {
	return &credentialStoreAdapter{repo: repo}
}

func (a *credentialStoreAdapter) GetOperatorCredentialsByEmail(ctx context.Context, email string) (application.OperatorCredentials, error) {
	stored, err := a.repo.GetOperatorByEmail(ctx, email)
	if err != nil {
		return application.OperatorCredentials{}, mapSessionErr(err)
	}
	if stored.Disabled {
		return application.OperatorCredentials{}, application.ErrNotFound
	}
	return application.OperatorCredentials{
		Operator:     toApplicationOperator(stored),
		PasswordHash: stored.PasswordHash,
	}, nil
}

func (a *credentialStoreAdapter) GetOperator(ctx context.Context, id string) (application.Operator, error) {
	stored, err := a.repo.GetOperator(ctx, id)
	if err != nil {
		return application.Operator{}, mapSessionErr(err)
	}
	return toApplicationOperator(stored), nil
}

type sessionRepositoryAdapter struct {
	repo *sqlite.SessionRepository
}

func newSessionRepositoryAdapter(repo *sqlite.SessionRepository) *sessionRepositoryAdapter {
	return &sessionRepositoryAdapter{repo: repo}
}

func (a *sessionRepositoryAdapter) CreateSession(ctx context.Context, session application.Session) (application.Session, error) {
	stored, err := a.repo.CreateSession(ctx, toPersistenceSession(session))
	if err != nil {
		return application.Session{}, mapSessionErr(err)
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) GetSession(ctx context.Context, token string) (application.Session, error) {
	stored, err := a.repo.GetSession(ctx, token)
	if err != nil {
		return application.Session{}, mapSessionErr(err)
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (application.Session, error) {
	stored, err := a.repo.RevokeSession(ctx, token, revokedAt)
	if err != nil {
		return application.Session{}, mapSessionErr(err)
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	return mapSessionErr(a.repo.DeleteExpiredSessions(ctx, reference))
}

type operatorRepositoryAdapter struct {
	repo *sqlite.OperatorRepository
}

func newOperatorRepositoryAdapter(repo *sqlite.OperatorRepository) *operatorRepositoryAdapter {
	return &operatorRepositoryAdapter{repo: repo}
}

func (a *operatorRepositoryAdapter) CreateOperator(ctx context.Context, operator application.Operator, passwordHash string) (application.Operator, error) {
	if err := a.repo.CreateOperator(ctx, toPersistenceOperator(operator, passwordHash)); err != nil {
		return application.Operator{}, err
	}
	stored, err := a.repo.GetOperator(ctx, operator.ID)
	if err != nil {
		return application.Operator{}, err
	}
	return toApplicationOperator(stored), nil
}

func (a *operatorRepositoryAdapter) GetOperator(ctx context.Context, id string) (application.Operator, error) {
	stored, err := a.repo.GetOperator(ctx, id)
	if err != nil {
		return application.Operator{}, err
	}
	return toApplicationOperator(stored), nil
}

func (a *operatorRepositoryAdapter) UpdateOperator(ctx context.Context, operator application.Operator) (application.Operator, error) {
	current, err := a.repo.GetOperator(ctx, operator.ID)
	if err != nil {
		return application.Operator{}, err
	}
	if err := a.repo.UpdateOperator(ctx, toPersistenceOperator(operator, current.PasswordHash)); err != nil {
		return application.Operator{}, err
	}
	stored, err := a.repo.GetOperator(ctx, operator.ID)
	if err != nil {
		return application.Operator{}, err
	}
	return toApplicationOperator(stored), nil
}

func (a *operatorRepositoryAdapter) DeleteOperator(ctx context.Context, id string) error {
	return a.repo.DeleteOperator(ctx, id)
}

func (a *operatorRepositoryAdapter) ListOperators(ctx context.Context) ([]application.Operator, error) {
	models, err := a.repo.ListOperators(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	operators := make([]application.Operator, 0, len(models))
	for _, model := range models {
		operators = append(operators, toApplicationOperator(model))
	}
	return operators, nil
}

type roomRepositoryAdapter struct {
	repo *sqlite.RoomRepository
}

func newRoomRepositoryAdapter(repo *sqlite.RoomRepository) *roomRepositoryAdapter {
	return &roomRepositoryAdapter{repo: repo}
}

func (a *roomRepositoryAdapter) CreateRoom(ctx context.Context, room application.Room) (application.Room, error) {
	if err := a.repo.CreateRoom(ctx, toPersistenceRoom(room)); err != nil {
		return application.Room{}, err
	}
	stored, err := a.repo.GetRoom(ctx, room.ID)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) GetRoom(ctx context.Context, id string) (application.Room, error) {
	stored, err := a.repo.GetRoom(ctx, id)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) UpdateRoom(ctx context.Context, room application.Room) (application.Room, error) {
	if err := a.repo.UpdateRoom(ctx, toPersistenceRoom(room)); err != nil {
		return application.Room{}, err
	}
	stored, err := a.repo.GetRoom(ctx, room.ID)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) DeleteRoom(ctx context.Context, id string) error {
	return a.repo.DeleteRoom(ctx, id)
}

func (a *roomRepositoryAdapter) ListRooms(ctx context.Context) ([]application.Room, error) {
	models, err := a.repo.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	return toApplicationRooms(models), nil
}

func (a *roomRepositoryAdapter) ListRoomsByCampusGroup(ctx context.Context, campusGroupID string) ([]application.Room, error) {
	models, err := a.repo.ListRoomsByCampusGroup(ctx, campusGroupID)
	if err != nil {
		return nil, err
	}
	return toApplicationRooms(models), nil
}

type participantRepositoryAdapter struct {
	repo *sqlite.ParticipantRepository
}

func newParticipantRepositoryAdapter(repo *sqlite.ParticipantRepository) *participantRepositoryAdapter {
	return &participantRepositoryAdapter{repo: repo}
}

func (a *participantRepositoryAdapter) CreateParticipant(ctx context.Context, participant application.Participant) (application.Participant, error) {
	if err := a.repo.CreateParticipant(ctx, toPersistenceParticipant(participant)); err != nil {
		return application.Participant{}, err
	}
	stored, err := a.repo.GetParticipant(ctx, participant.ID)
	if err != nil {
		return application.Participant{}, err
	}
	return toApplicationParticipant(stored), nil
}

func (a *participantRepositoryAdapter) CreateParticipants(ctx context.Context, participants []application.Participant) error {
	models := make([]persistence.Participant, 0, len(participants))
	for _, participant := range participants {
		models = append(models, toPersistenceParticipant(participant))
	}
	return a.repo.CreateParticipants(ctx, models)
}

func (a *participantRepositoryAdapter) GetParticipant(ctx context.Context, id string) (application.Participant, error) {
	stored, err := a.repo.GetParticipant(ctx, id)
	if err != nil {
		return application.Participant{}, err
	}
	return toApplicationParticipant(stored), nil
}

func (a *participantRepositoryAdapter) UpdateParticipant(ctx context.Context, participant application.Participant) (application.Participant, error) {
	if err := a.repo.UpdateParticipant(ctx, toPersistenceParticipant(participant)); err != nil {
		return application.Participant{}, err
	}
	stored, err := a.repo.GetParticipant(ctx, participant.ID)
	if err != nil {
		return application.Participant{}, err
	}
	return toApplicationParticipant(stored), nil
}

func (a *participantRepositoryAdapter) DeleteParticipant(ctx context.Context, id string) error {
	return a.repo.DeleteParticipant(ctx, id)
}

func (a *participantRepositoryAdapter) ListParticipants(ctx context.Context) ([]application.Participant, error) {
	models, err := a.repo.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}
	return toApplicationParticipants(models), nil
}

func (a *participantRepositoryAdapter) ListParticipantsByGroup(ctx context.Context, groupID string) ([]application.Participant, error) {
	models, err := a.repo.ListParticipantsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return toApplicationParticipants(models), nil
}

// scheduleAdapter serves both the write path of a generation run and the read
// path of the schedule views over the same repository.
type scheduleAdapter struct {
	repo *sqlite.ScheduleRepository
}

func newScheduleAdapter(repo *sqlite.ScheduleRepository) *scheduleAdapter {
	return &scheduleAdapter{repo: repo}
}

func (a *scheduleAdapter) CreateSummary(ctx context.Context, summary application.ScheduleSummary) error {
	return a.repo.CreateSummary(ctx, toPersistenceSummary(summary))
}

func (a *scheduleAdapter) UpdateSummaryStatus(ctx context.Context, id, status string) error {
	return a.repo.UpdateSummaryStatus(ctx, id, status)
}

func (a *scheduleAdapter) CreateBatch(ctx context.Context, summaryID string, batch application.ScheduleBatch) error {
	return a.repo.CreateBatch(ctx, toPersistenceBatch(summaryID, batch))
}

func (a *scheduleAdapter) CreateAssignments(ctx context.Context, summaryID string, assignments []application.ScheduleAssignment) error {
	models := make([]persistence.Assignment, 0, len(assignments))
	for _, assignment := range assignments {
		models = append(models, toPersistenceAssignment(summaryID, assignment))
	}
	return a.repo.CreateAssignments(ctx, models)
}

func (a *scheduleAdapter) GetSummary(ctx context.Context, id string) (application.ScheduleSummary, error) {
	stored, err := a.repo.GetSummary(ctx, id)
	if err != nil {
		return application.ScheduleSummary{}, err
	}
	return toApplicationSummary(stored), nil
}

func (a *scheduleAdapter) ListSummaries(ctx context.Context) ([]application.ScheduleSummary, error) {
	models, err := a.repo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]application.ScheduleSummary, 0, len(models))
	for _, model := range models {
		summaries = append(summaries, toApplicationSummary(model))
	}
	return summaries, nil
}

func (a *scheduleAdapter) ListBatches(ctx context.Context, summaryID string) ([]application.ScheduleBatch, error) {
	models, err := a.repo.ListBatches(ctx, summaryID)
	if err != nil {
		return nil, err
	}
	batches := make([]application.ScheduleBatch, 0, len(models))
	for _, model := range models {
		batches = append(batches, toApplicationBatch(model))
	}
	return batches, nil
}

func (a *scheduleAdapter) ListAssignments(ctx context.Context, summaryID string) ([]application.ScheduleAssignment, error) {
	models, err := a.repo.ListAssignments(ctx, summaryID)
	if err != nil {
		return nil, err
	}
	assignments := make([]application.ScheduleAssignment, 0, len(models))
	for _, model := range models {
		assignments = append(assignments, toApplicationAssignment(model))
	}
	return assignments, nil
}

func toApplicationOperator(model persistence.Operator) application.Operator {
	return application.Operator{
		ID:          model.ID,
		Email:       model.Email,
		DisplayName: model.DisplayName,
		IsAdmin:     model.IsAdmin,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toPersistenceOperator(operator application.Operator, passwordHash string) persistence.Operator {
	return persistence.Operator{
		ID:           operator.ID,
		Email:        operator.Email,
		DisplayName:  operator.DisplayName,
		PasswordHash: passwordHash,
		IsAdmin:      operator.IsAdmin,
		CreatedAt:    operator.CreatedAt,
		UpdatedAt:    operator.UpdatedAt,
	}
}

func toApplicationSession(model persistence.Session) application.Session {
	return application.Session{
		ID:         model.ID,
		OperatorID: model.OperatorID,
		Token:      model.Token,
		ExpiresAt:  model.ExpiresAt,
		CreatedAt:  model.CreatedAt,
		RevokedAt:  model.RevokedAt,
	}
}

func toPersistenceSession(session application.Session) persistence.Session {
	return persistence.Session{
		ID:         session.ID,
		OperatorID: session.OperatorID,
		Token:      session.Token,
		ExpiresAt:  session.ExpiresAt,
		CreatedAt:  session.CreatedAt,
		RevokedAt:  session.RevokedAt,
	}
}

func toApplicationRoom(model persistence.Room) application.Room {
	return application.Room{
		ID:            model.ID,
		CampusGroupID: model.CampusGroupID,
		Campus:        model.Campus,
		Building:      model.Building,
		Name:          model.Name,
		Capacity:      model.Capacity,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func toApplicationRooms(models []persistence.Room) []application.Room {
	if len(models) == 0 {
		return nil
	}
	rooms := make([]application.Room, 0, len(models))
	for _, model := range models {
		rooms = append(rooms, toApplicationRoom(model))
	}
	return rooms
}

func toPersistenceRoom(room application.Room) persistence.Room {
	return persistence.Room{
		ID:            room.ID,
		CampusGroupID: room.CampusGroupID,
		Campus:        room.Campus,
		Building:      room.Building,
		Name:          room.Name,
		Capacity:      room.Capacity,
		CreatedAt:     room.CreatedAt,
		UpdatedAt:     room.UpdatedAt,
	}
}

func toApplicationParticipant(model persistence.Participant) application.Participant {
	return application.Participant{
		ID:        model.ID,
		GroupID:   model.GroupID,
		Number:    model.Number,
		Name:      model.Name,
		Email:     model.Email,
		Province:  model.Province,
		City:      model.City,
		Priority:  model.Priority,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toApplicationParticipants(models []persistence.Participant) []application.Participant {
	if len(models) == 0 {
		return nil
	}
	participants := make([]application.Participant, 0, len(models))
	for _, model := range models {
		participants = append(participants, toApplicationParticipant(model))
	}
	return participants
}

func toPersistenceParticipant(participant application.Participant) persistence.Participant {
	return persistence.Participant{
		ID:        participant.ID,
		GroupID:   participant.GroupID,
		Number:    participant.Number,
		Name:      participant.Name,
		Email:     participant.Email,
		Province:  participant.Province,
		City:      participant.City,
		Priority:  participant.Priority,
		CreatedAt: participant.CreatedAt,
		UpdatedAt: participant.UpdatedAt,
	}
}

func toApplicationSummary(model persistence.ScheduleSummary) application.ScheduleSummary {
	return application.ScheduleSummary{
		ID:                 model.ID,
		EventName:          model.EventName,
		EventType:          model.EventType,
		CampusGroupID:      model.CampusGroupID,
		ParticipantGroupID: model.ParticipantGroupID,
		StartDate:          model.StartDate,
		WindowStartMinute:  model.WindowStartMinute,
		WindowEndMinute:    model.WindowEndMinute,
		SlotMinutes:        model.SlotMinutes,
		ScheduledCount:     model.ScheduledCount,
		UnscheduledCount:   model.UnscheduledCount,
		ExecutionSeconds:   model.ExecutionSeconds,
		Status:             model.Status,
		CreatedAt:          model.CreatedAt,
	}
}

func toPersistenceSummary(summary application.ScheduleSummary) persistence.ScheduleSummary {
	return persistence.ScheduleSummary{
		ID:                 summary.ID,
		EventName:          summary.EventName,
		EventType:          summary.EventType,
		CampusGroupID:      summary.CampusGroupID,
		ParticipantGroupID: summary.ParticipantGroupID,
		StartDate:          summary.StartDate,
		WindowStartMinute:  summary.WindowStartMinute,
		WindowEndMinute:    summary.WindowEndMinute,
		SlotMinutes:        summary.SlotMinutes,
		ScheduledCount:     summary.ScheduledCount,
		UnscheduledCount:   summary.UnscheduledCount,
		ExecutionSeconds:   summary.ExecutionSeconds,
		Status:             summary.Status,
		CreatedAt:          summary.CreatedAt,
	}
}

func toApplicationBatch(model persistence.Batch) application.ScheduleBatch {
	return application.ScheduleBatch{
		ID:               model.ID,
		Name:             model.Name,
		RoomID:           model.RoomID,
		RoomName:         model.RoomName,
		Campus:           model.Campus,
		Building:         model.Building,
		SlotDate:         model.SlotDate,
		SlotStartMinute:  model.SlotStartMinute,
		SlotEndMinute:    model.SlotEndMinute,
		ParticipantCount: model.ParticipantCount,
		HasPriority:      model.HasPriority,
	}
}

func toPersistenceBatch(summaryID string, batch application.ScheduleBatch) persistence.Batch {
	return persistence.Batch{
		ID:               batch.ID,
		SummaryID:        summaryID,
		Name:             batch.Name,
		RoomID:           batch.RoomID,
		RoomName:         batch.RoomName,
		Campus:           batch.Campus,
		Building:         batch.Building,
		SlotDate:         batch.SlotDate,
		SlotStartMinute:  batch.SlotStartMinute,
		SlotEndMinute:    batch.SlotEndMinute,
		ParticipantCount: batch.ParticipantCount,
		HasPriority:      batch.HasPriority,
	}
}

func toApplicationAssignment(model persistence.Assignment) application.ScheduleAssignment {
	return application.ScheduleAssignment{
		ID:              model.ID,
		BatchID:         model.BatchID,
		ParticipantID:   model.ParticipantID,
		RoomID:          model.RoomID,
		SlotDate:        model.SlotDate,
		SlotStartMinute: model.SlotStartMinute,
		SlotEndMinute:   model.SlotEndMinute,
		SeatNumber:      model.SeatNumber,
	}
}

func toPersistenceAssignment(summaryID string, assignment application.ScheduleAssignment) persistence.Assignment {
	return persistence.Assignment{
		ID:              assignment.ID,
		SummaryID:       summaryID,
		BatchID:         assignment.BatchID,
		ParticipantID:   assignment.ParticipantID,
		RoomID:          assignment.RoomID,
		SlotDate:        assignment.SlotDate,
		SlotStartMinute: assignment.SlotStartMinute,
		SlotEndMinute:   assignment.SlotEndMinute,
		SeatNumber:      assignment.SeatNumber,
	}
}
