package impl

import (
	"context"

	"nexus/internal/domain/entity"
	"nexus/internal/domain/repository"
	"nexus/internal/errors"
	"nexus/internal/usecase"
)

func buildAddress(input usecase.AddressInput) entity.Address {
	return entity.Address{
		Street:       input.Street,
		Neighborhood: input.Neighborhood,
		City:         input.City,
		Number:       input.Number,
		Complement:   input.Complement,
	}
}

// createPerson inserts the address and then the person owning it, back-filling both IDs.
// The caller inserts the role row afterwards in the same unit of work.
func createPerson(ctx context.Context, repoFactory repository.RepositoryFactory, person *entity.Person) error {
	if err := repoFactory.NewAddressRepository().Create(ctx, &person.Address); err != nil {
		return errors.Wrap(err, "failed to create address")
	}

	if err := repoFactory.NewPersonRepository().Create(ctx, person); err != nil {
		return errors.Wrap(err, "failed to create person")
	}

	return nil
}

// updatePerson overwrites the address and then the person identified by person.TaxID.
// Either statement touching no row aborts the unit of work.
func updatePerson(ctx context.Context, repoFactory repository.RepositoryFactory, person *entity.Person) error {
	if err := repoFactory.NewAddressRepository().UpdateByTaxID(ctx, person.TaxID, &person.Address); err != nil {
		return errors.Wrap(err, "failed to update address")
	}

	if err := repoFactory.NewPersonRepository().Update(ctx, person); err != nil {
		return errors.Wrap(err, "failed to update person")
	}

	return nil
}
