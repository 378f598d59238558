package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/application/usecase"
)

// attachmentField campo del formulario multipart con el documento de la organización.
const attachmentField = "attachment"

// OrganizationHandler organización, sub-inventarios y localizadores.
type OrganizationHandler struct {
	uc *usecase.OrganizationUseCase
}

// NewOrganizationHandler construye el handler.
func NewOrganizationHandler(uc *usecase.OrganizationUseCase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc}
}

// Upsert godoc
// @Summary      Crear o actualizar la organización
// @Description  Formulario multipart. Un adjunto nuevo reemplaza al anterior.
// @Tags         organization
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        name           formData  string  true   "Nombre"
// @Param        legal_address  formData  string  false  "Dirección legal"
// @Param        gst_number     formData  string  false  "GST"
// @Param        vat_number     formData  string  false  "VAT"
// @Param        cin            formData  string  false  "CIN"
// @Param        pan_number     formData  string  false  "PAN"
// @Param        start_date     formData  string  false  "YYYY-MM-DD"
// @Param        attachment     formData  file    false  "Documento"
// @Success      200  {object}  dto.OrganizationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /organization [post]
func (h *OrganizationHandler) Upsert(c *fiber.Ctx) error {
	var in dto.OrganizationRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	var upload *dto.FileUpload
	if fh, err := c.FormFile(attachmentField); err == nil {
		f, err := fh.Open()
		if err != nil {
			return respondError(c, fmt.Errorf("abrir adjunto: %w", err))
		}
		defer f.Close()
		upload = &dto.FileUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Content:     f,
		}
	}
	out, err := h.uc.Upsert(c.UserContext(), in, upload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar organizaciones
// @Tags         organization
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrganizationResponse
// @Router       /organization [get]
func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Attachment godoc
// @Summary      Descargar el adjunto de la organización
// @Tags         organization
// @Security     Bearer
// @Produce      octet-stream
// @Param        id   path  string  true  "ID de la organización"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /organization/{id}/attachment [get]
func (h *OrganizationHandler) Attachment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	att, err := h.uc.OpenAttachment(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, att.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, att.Filename))
	// fasthttp cierra el reader al terminar de enviar
	return c.SendStream(att.Content)
}

// CreateSubInventory godoc
// @Summary      Crear sub-inventario
// @Tags         organization
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la organización"
// @Param        body  body  dto.SubInventoryRequest  true  "Datos"
// @Success      201   {object}  dto.SubInventoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /organization/{id}/sub-inventory [post]
func (h *OrganizationHandler) CreateSubInventory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SubInventoryRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateSubInventory(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateSubInventory godoc
// @Summary      Actualizar sub-inventario
// @Tags         organization
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la organización"
// @Param        sid   path  string  true  "ID del sub-inventario"
// @Param        body  body  dto.SubInventoryRequest  true  "Datos"
// @Success      200   {object}  dto.SubInventoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /organization/{id}/sub-inventory/{sid} [put]
func (h *OrganizationHandler) UpdateSubInventory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	sid, err := paramID(c, "sid")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SubInventoryRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateSubInventory(c.UserContext(), id, sid, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteSubInventory godoc
// @Summary      Eliminar sub-inventario
// @Description  Cancela las transferencias abiertas de sus localizadores y desasocia sus categorías.
// @Tags         organization
// @Security     Bearer
// @Param        id   path  string  true  "ID de la organización"
// @Param        sid  path  string  true  "ID del sub-inventario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /organization/{id}/sub-inventory/{sid} [delete]
func (h *OrganizationHandler) DeleteSubInventory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	sid, err := paramID(c, "sid")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteSubInventory(c.UserContext(), id, sid); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateLocator godoc
// @Summary      Crear localizador
// @Tags         organization
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la organización"
// @Param        sid   path  string  true  "ID del sub-inventario"
// @Param        body  body  dto.LocatorRequest  true  "Datos"
// @Success      201   {object}  dto.LocatorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /organization/{id}/sub-inventory/{sid}/locator [post]
func (h *OrganizationHandler) CreateLocator(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	sid, err := paramID(c, "sid")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.LocatorRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateLocator(c.UserContext(), id, sid, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateLocator godoc
// @Summary      Actualizar localizador
// @Tags         organization
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la organización"
// @Param        sid   path  string  true  "ID del sub-inventario"
// @Param        lid   path  string  true  "ID del localizador"
// @Param        body  body  dto.LocatorRequest  true  "Datos"
// @Success      200   {object}  dto.LocatorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /organization/{id}/sub-inventory/{sid}/locator/{lid} [put]
func (h *OrganizationHandler) UpdateLocator(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	sid, err := paramID(c, "sid")
	if err != nil {
		return respondError(c, err)
	}
	lid, err := paramID(c, "lid")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.LocatorRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateLocator(c.UserContext(), id, sid, lid, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteLocator godoc
// @Summary      Eliminar localizador
// @Tags         organization
// @Security     Bearer
// @Param        id   path  string  true  "ID de la organización"
// @Param        sid  path  string  true  "ID del sub-inventario"
// @Param        lid  path  string  true  "ID del localizador"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /organization/{id}/sub-inventory/{sid}/locator/{lid} [delete]
func (h *OrganizationHandler) DeleteLocator(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	sid, err := paramID(c, "sid")
	if err != nil {
		return respondError(c, err)
	}
	lid, err := paramID(c, "lid")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteLocator(c.UserContext(), id, sid, lid); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

