package controllers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bellakids/storefront-backend/api/responses"
	"github.com/bellakids/storefront-backend/internal/catalog"
	"github.com/bellakids/storefront-backend/internal/media"
	"github.com/bellakids/storefront-backend/pkg/enums"
	pkgerrors "github.com/bellakids/storefront-backend/pkg/errors"
	"github.com/bellakids/storefront-backend/pkg/logger"
	"github.com/bellakids/storefront-backend/pkg/types"
)

// The admin panel submits products as multipart forms so photo files travel
// with the text fields in one request.
const maxMultipartMemory = 32 << 20

// AdminCreateProduct handles product creation, storing uploaded photos first.
func AdminCreateProduct(svc catalog.Service, uploads *media.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || uploads == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		form, err := parseProductForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		images, err := form.storeImages(r, uploads)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := form.toCreateInput(images)
		if err != nil {
			rollbackImages(r, uploads, images)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			rollbackImages(r, uploads, images)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminUpdateProduct applies a partial product mutation. Only form fields that
// were actually sent are touched; new photo files are appended to the kept
// image list.
func AdminUpdateProduct(svc catalog.Service, uploads *media.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || uploads == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := productIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		form, err := parseProductForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		added, err := form.storeImages(r, uploads)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := form.toUpdateInput(added)
		if err != nil {
			rollbackImages(r, uploads, added)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			rollbackImages(r, uploads, added)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminToggleStock flips a product between in stock and sold out.
func AdminToggleStock(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := productIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.ToggleStock(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminDeleteProduct removes a product and its uploaded photos.
func AdminDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := productIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// productForm is the parsed multipart payload shared by create and update.
type productForm struct {
	values map[string][]string
	files  []*multipart.FileHeader
}

func parseProductForm(r *http.Request) (*productForm, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	form := &productForm{values: r.MultipartForm.Value}
	if files := r.MultipartForm.File["images"]; len(files) > 0 {
		form.files = files
	}
	return form, nil
}

// field returns the raw value and whether the field was sent at all. Update
// semantics hinge on that distinction.
func (f *productForm) field(name string) (string, bool) {
	values, ok := f.values[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return strings.TrimSpace(values[0]), true
}

func (f *productForm) stringPtr(name string) *string {
	value, ok := f.field(name)
	if !ok {
		return nil
	}
	return &value
}

// storeImages saves the uploaded files and pairs them with the variant tags
// sent under imageTags, in file order.
func (f *productForm) storeImages(r *http.Request, uploads *media.Store) (types.ImageRefs, error) {
	if len(f.files) == 0 {
		return nil, nil
	}

	batch := make([]media.Upload, 0, len(f.files))
	open := make([]multipart.File, 0, len(f.files))
	defer func() {
		for _, file := range open {
			_ = file.Close()
		}
	}()

	for _, header := range f.files {
		file, err := header.Open()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading uploaded file")
		}
		open = append(open, file)
		batch = append(batch, media.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      file,
		})
	}

	urls, err := uploads.SaveAll(r.Context(), batch)
	if err != nil {
		return nil, err
	}

	tags, err := f.imageTags()
	if err != nil {
		rollbackURLs(r, uploads, urls)
		return nil, err
	}

	refs := make(types.ImageRefs, 0, len(urls))
	for i, url := range urls {
		ref := types.ImageRef{URL: url}
		if i < len(tags) {
			ref.VariantTag = strings.TrimSpace(tags[i])
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (f *productForm) imageTags() ([]string, error) {
	raw, ok := f.field("imageTags")
	if !ok || raw == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid image tags")
	}
	return tags, nil
}

func (f *productForm) toCreateInput(images types.ImageRefs) (catalog.CreateProductInput, error) {
	input := catalog.CreateProductInput{
		ItemID:        f.stringPtr("itemId"),
		NameEN:        f.stringPtr("nameEn"),
		NameAR:        f.stringPtr("nameAr"),
		DescriptionEN: f.stringPtr("descriptionEn"),
		DescriptionAR: f.stringPtr("descriptionAr"),
		Images:        images,
	}

	if category, ok := f.field("category"); ok {
		input.Category = enums.ProductCategory(strings.ToLower(category))
	}

	sizes, err := f.stringList("sizes")
	if err != nil {
		return catalog.CreateProductInput{}, err
	}
	if sizes != nil {
		input.Sizes = *sizes
	}
	colors, err := f.stringList("colors")
	if err != nil {
		return catalog.CreateProductInput{}, err
	}
	if colors != nil {
		input.Colors = *colors
	}

	price, err := f.requiredDecimal("price")
	if err != nil {
		return catalog.CreateProductInput{}, err
	}
	input.Price = price

	oldPrice, _, err := f.optionalDecimal("oldPrice")
	if err != nil {
		return catalog.CreateProductInput{}, err
	}
	input.OldPrice = oldPrice

	inStock, err := f.boolPtr("inStock")
	if err != nil {
		return catalog.CreateProductInput{}, err
	}
	input.InStock = inStock

	return input, nil
}

func (f *productForm) toUpdateInput(added types.ImageRefs) (catalog.UpdateProductInput, error) {
	input := catalog.UpdateProductInput{
		ItemID:        f.stringPtr("itemId"),
		NameEN:        f.stringPtr("nameEn"),
		NameAR:        f.stringPtr("nameAr"),
		DescriptionEN: f.stringPtr("descriptionEn"),
		DescriptionAR: f.stringPtr("descriptionAr"),
	}

	if category, ok := f.field("category"); ok {
		parsed := enums.ProductCategory(strings.ToLower(category))
		input.Category = &parsed
	}

	sizes, err := f.stringList("sizes")
	if err != nil {
		return catalog.UpdateProductInput{}, err
	}
	input.Sizes = sizes
	colors, err := f.stringList("colors")
	if err != nil {
		return catalog.UpdateProductInput{}, err
	}
	input.Colors = colors

	if raw, ok := f.field("price"); ok {
		price, err := parseDecimal("price", raw)
		if err != nil {
			return catalog.UpdateProductInput{}, err
		}
		input.Price = &price
	}

	oldPrice, sent, err := f.optionalDecimal("oldPrice")
	if err != nil {
		return catalog.UpdateProductInput{}, err
	}
	input.OldPrice = oldPrice
	// An explicitly blank oldPrice field ends the sale.
	input.ClearOldPrice = sent && oldPrice == nil

	inStock, err := f.boolPtr("inStock")
	if err != nil {
		return catalog.UpdateProductInput{}, err
	}
	input.InStock = inStock

	images, err := f.keptImages()
	if err != nil {
		return catalog.UpdateProductInput{}, err
	}
	if images != nil || len(added) > 0 {
		combined := types.ImageRefs{}
		if images != nil {
			combined = append(combined, *images...)
		}
		combined = append(combined, added...)
		input.Images = &combined
	}

	return input, nil
}

// keptImages parses the images field, a JSON list of the refs the admin wants
// to keep. Sending it without any entries removes every existing photo.
func (f *productForm) keptImages() (*types.ImageRefs, error) {
	raw, ok := f.field("images")
	if !ok {
		return nil, nil
	}
	refs := types.ImageRefs{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &refs); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid images field")
		}
	}
	return &refs, nil
}

// stringList accepts either a JSON array or a comma-separated list.
func (f *productForm) stringList(name string) (*[]string, error) {
	raw, ok := f.field(name)
	if !ok {
		return nil, nil
	}
	values := []string{}
	if raw == "" {
		return &values, nil
	}
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &values); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name+" field")
		}
		return &values, nil
	}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return &values, nil
}

func (f *productForm) requiredDecimal(name string) (decimal.Decimal, error) {
	raw, ok := f.field(name)
	if !ok || raw == "" {
		return decimal.Decimal{}, pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	return parseDecimal(name, raw)
}

func (f *productForm) optionalDecimal(name string) (*decimal.Decimal, bool, error) {
	raw, sent := f.field(name)
	if !sent || raw == "" {
		return nil, sent, nil
	}
	value, err := parseDecimal(name, raw)
	if err != nil {
		return nil, sent, err
	}
	return &value, sent, nil
}

func (f *productForm) boolPtr(name string) (*bool, error) {
	raw, ok := f.field(name)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name+" field")
	}
	return &value, nil
}

func parseDecimal(name, raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name+" field")
	}
	return value, nil
}

// rollbackImages removes uploads written before a later step failed.
func rollbackImages(r *http.Request, uploads *media.Store, refs types.ImageRefs) {
	for _, ref := range refs {
		_ = uploads.Remove(r.Context(), ref.URL)
	}
}

func rollbackURLs(r *http.Request, uploads *media.Store, urls []string) {
	for _, url := range urls {
		_ = uploads.Remove(r.Context(), url)
	}
}
