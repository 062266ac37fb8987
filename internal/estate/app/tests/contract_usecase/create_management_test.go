package contractusecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"realtydesk/internal/estate/app"
	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/ports/api"
)

func TestCreateManagementForRent(t *testing.T) {
	realtyID := uuid.New()
	landlordID := uuid.New()
	employerID := uuid.New()

	validCmd := api.CreateManagementForRentContract{
		RealtyID:      realtyID,
		LandlordID:    landlordID,
		EmployerID:    employerID,
		Name:          "Rental management",
		Description:   "Management of the apartment for rent",
		ExpectedPrice: testSalary(),
		MakePlacement: true,
	}

	setupPreChecks := func(storage *mockStorage) {
		storage.realties.On("FindByID", mock.Anything, realtyID).Return(testRealty(realtyID), nil)
		storage.users.On("FindByIDs", mock.Anything, []uuid.UUID{landlordID, employerID}).
			Return(usersByID(testUser(landlordID), testUser(employerID)), nil)
		storage.contracts.On("FindActiveEmployment", mock.Anything, employerID).
			Return(activeEmployment(employerID), nil)
	}

	tests := []struct {
		name         string
		cmd          api.CreateManagementForRentContract
		setupMocks   func(storage *mockStorage, tx *mockTxStorage)
		expectedErr  error
		errorContext string
	}{
		{
			name: "successfully creates management contract with placement",
			cmd:  validCmd,
			setupMocks: func(storage *mockStorage, tx *mockTxStorage) {
				setupPreChecks(storage)
				tx.realties.On("Lock", mock.Anything, realtyID).Return(nil)
				tx.contracts.On("FindActiveManagement", mock.Anything, entities.ContractKindManagementForRent, realtyID).
					Return(nil, entities.ErrContractNotExists)
				tx.contracts.On("Upsert", mock.Anything, mock.MatchedBy(func(c *entities.Contract) bool {
					return c.Kind == entities.ContractKindManagementForRent && c.IsPlaced
				})).Return(nil)
			},
		},
		{
			name: "realty does not exist",
			cmd:  validCmd,
			setupMocks: func(storage *mockStorage, tx *mockTxStorage) {
				storage.realties.On("FindByID", mock.Anything, realtyID).
					Return(nil, entities.ErrRealtyNotExists)
			},
			expectedErr:  entities.ErrRealtyNotExists,
			errorContext: "finding realty",
		},
		{
			name: "landlord does not exist",
			cmd:  validCmd,
			setupMocks: func(storage *mockStorage, tx *mockTxStorage) {
				storage.realties.On("FindByID", mock.Anything, realtyID).Return(testRealty(realtyID), nil)
				storage.users.On("FindByIDs", mock.Anything, []uuid.UUID{landlordID, employerID}).
					Return(usersByID(testUser(employerID)), nil)
			},
			expectedErr:  entities.ErrUserNotExists,
			errorContext: "checking users",
		},
		{
			name: "employer is not an employer",
			cmd:  validCmd,
			setupMocks: func(storage *mockStorage, tx *mockTxStorage) {
				storage.realties.On("FindByID", mock.Anything, realtyID).Return(testRealty(realtyID), nil)
				storage.users.On("FindByIDs", mock.Anything, []uuid.UUID{landlordID, employerID}).
					Return(usersByID(testUser(landlordID), testUser(employerID)), nil)
				storage.contracts.On("FindActiveEmployment", mock.Anything, employerID).
					Return(nil, entities.ErrContractNotExists)
			},
			expectedErr:  entities.ErrUserNotEmployer,
			errorContext: "checking employment",
		},
		{
			name: "realty is already managed",
			cmd:  validCmd,
			setupMocks: func(storage *mockStorage, tx *mockTxStorage) {
				setupPreChecks(storage)
				tx.realties.On("Lock", mock.Anything, realtyID).Return(nil)
				tx.contracts.On("FindActiveManagement", mock.Anything, entities.ContractKindManagementForRent, realtyID).
					Return(activeManagement(entities.ContractKindManagementForRent, realtyID, uuid.New(), landlordID), nil)
			},
			expectedErr:  entities.ErrRealtyAlreadyManaged,
			errorContext: "checking management",
		},
		{
			name: "realty lock failure",
			cmd:  validCmd,
			setupMocks: func(storage *mockStorage, tx *mockTxStorage) {
				setupPreChecks(storage)
				tx.realties.On("Lock", mock.Anything, realtyID).Return(errors.New("lock timeout"))
			},
			errorContext: "locking realty",
		},
		{
			name: "contract name is blank",
			cmd: api.CreateManagementForRentContract{
				RealtyID:      realtyID,
				LandlordID:    landlordID,
				EmployerID:    employerID,
				Name:          "   ",
				Description:   "Management of the apartment for rent",
				ExpectedPrice: testSalary(),
			},
			setupMocks: func(storage *mockStorage, tx *mockTxStorage) {
				setupPreChecks(storage)
			},
			expectedErr:  entities.ErrInvalidContractName,
			errorContext: "validating contract",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			storage, tx := newMockStorage()
			tc.setupMocks(storage, tx)

			uc := app.NewContractUseCase(storage)
			contract, err := uc.CreateManagementForRent(context.Background(), tc.cmd)

			if tc.expectedErr != nil || tc.errorContext != "" {
				require.Error(t, err)
				if tc.errorContext != "" {
					assert.Contains(t, err.Error(), tc.errorContext)
				}
				if tc.expectedErr != nil {
					assert.ErrorIs(t, err, tc.expectedErr)
				}
				assert.Nil(t, contract)
				assert.False(t, tx.committed)
			} else {
				require.NoError(t, err)
				require.NotNil(t, contract)
				assert.Equal(t, entities.ContractKindManagementForRent, contract.Kind)
				require.NotNil(t, contract.RealtyID)
				assert.Equal(t, realtyID, *contract.RealtyID)
				require.NotNil(t, contract.LandlordID)
				assert.Equal(t, landlordID, *contract.LandlordID)
				assert.Equal(t, employerID, contract.EmployerID)
				assert.Equal(t, tc.cmd.MakePlacement, contract.IsPlaced)
				assert.True(t, tx.committed)
			}

			assertAllExpectations(t, storage, tx)
		})
	}
}

func TestCreateManagementForSale(t *testing.T) {
	realtyID := uuid.New()
	landlordID := uuid.New()
	employerID := uuid.New()

	cmd := api.CreateManagementForSaleContract{
		RealtyID:      realtyID,
		LandlordID:    landlordID,
		EmployerID:    employerID,
		Name:          "Sale management",
		Description:   "Management of the apartment for sale",
		ExpectedPrice: testSalary(),
	}

	t.Run("successfully creates sale management contract", func(t *testing.T) {
		storage, tx := newMockStorage()
		storage.realties.On("FindByID", mock.Anything, realtyID).Return(testRealty(realtyID), nil)
		storage.users.On("FindByIDs", mock.Anything, []uuid.UUID{landlordID, employerID}).
			Return(usersByID(testUser(landlordID), testUser(employerID)), nil)
		storage.contracts.On("FindActiveEmployment", mock.Anything, employerID).
			Return(activeEmployment(employerID), nil)
		tx.realties.On("Lock", mock.Anything, realtyID).Return(nil)
		tx.contracts.On("FindActiveManagement", mock.Anything, entities.ContractKindManagementForSale, realtyID).
			Return(nil, entities.ErrContractNotExists)
		tx.contracts.On("Upsert", mock.Anything, mock.MatchedBy(func(c *entities.Contract) bool {
			return c.Kind == entities.ContractKindManagementForSale && !c.IsPlaced
		})).Return(nil)

		uc := app.NewContractUseCase(storage)
		contract, err := uc.CreateManagementForSale(context.Background(), cmd)

		require.NoError(t, err)
		require.NotNil(t, contract)
		assert.Equal(t, entities.ContractKindManagementForSale, contract.Kind)
		assert.False(t, contract.IsPlaced)
		assert.True(t, tx.committed)
		assertAllExpectations(t, storage, tx)
	})

	t.Run("sale management does not conflict with rent management checks", func(t *testing.T) {
		storage, tx := newMockStorage()
		storage.realties.On("FindByID", mock.Anything, realtyID).Return(testRealty(realtyID), nil)
		storage.users.On("FindByIDs", mock.Anything, []uuid.UUID{landlordID, employerID}).
			Return(usersByID(testUser(landlordID), testUser(employerID)), nil)
		storage.contracts.On("FindActiveEmployment", mock.Anything, employerID).
			Return(activeEmployment(employerID), nil)
		tx.realties.On("Lock", mock.Anything, realtyID).Return(nil)
		tx.contracts.On("FindActiveManagement", mock.Anything, entities.ContractKindManagementForSale, realtyID).
			Return(activeManagement(entities.ContractKindManagementForSale, realtyID, employerID, landlordID), nil)

		uc := app.NewContractUseCase(storage)
		contract, err := uc.CreateManagementForSale(context.Background(), cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrRealtyAlreadyManaged)
		assert.Nil(t, contract)
		assert.False(t, tx.committed)
		assertAllExpectations(t, storage, tx)
	})
}
